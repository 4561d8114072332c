package synastry

import (
	"testing"

	"astrolabe/internal/aspect"
	"astrolabe/internal/chart"
	"astrolabe/internal/house"
	"astrolabe/internal/sky"
)

func chartAt(longitudes map[sky.Body]float64) *chart.Chart {
	positions := make(sky.Positions, len(longitudes))
	for body, lon := range longitudes {
		positions[body] = sky.LonToSign(lon)
	}
	return &chart.Chart{Observer: sky.Earth, Positions: positions}
}

func pair() (*chart.Chart, *chart.Chart) {
	first := chartAt(map[sky.Body]float64{
		sky.Sun: 10, sky.Moon: 100, sky.Venus: 200, sky.Mars: 300, sky.NorthNode: 10,
	})
	first.Houses = house.WholeSign(0)
	second := chartAt(map[sky.Body]float64{
		sky.Sun: 15, sky.Moon: 250, sky.Venus: 130, sky.Mars: 40,
	})
	return first, second
}

func TestCrossAspects(t *testing.T) {
	first, second := pair()
	s, err := Compute(first, second, aspect.General())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Aspects) != 7 {
		t.Fatalf("expected 7 cross aspects, got %d: %+v", len(s.Aspects), s.Aspects)
	}
	for i := 1; i < len(s.Aspects); i++ {
		if s.Aspects[i].Orb < s.Aspects[i-1].Orb {
			t.Fatalf("cross aspects not sorted by orb at %d", i)
		}
	}
	for _, a := range s.Aspects {
		if a.Involves(sky.NorthNode) {
			t.Fatalf("nodes must not be aspected: %+v", a)
		}
	}
	if s.Aspects[0].A != sky.Sun || s.Aspects[0].B != sky.Moon || !s.Aspects[0].Exact {
		t.Fatalf("expected exact Sun trine Moon first, got %+v", s.Aspects[0])
	}
}

func TestOverlays(t *testing.T) {
	first, second := pair()
	s, err := Compute(first, second, aspect.General())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.FirstInSecond != nil {
		t.Fatalf("second chart has no houses, got %+v", s.FirstInSecond)
	}
	want := map[sky.Body]int{sky.Sun: 1, sky.Moon: 9, sky.Venus: 5, sky.Mars: 2}
	if len(s.SecondInFirst) != len(want) {
		t.Fatalf("expected %d overlays, got %d", len(want), len(s.SecondInFirst))
	}
	for _, o := range s.SecondInFirst {
		if want[o.Body] != o.House {
			t.Fatalf("%s: expected house %d, got %d", o.Body, want[o.Body], o.House)
		}
	}
}

func TestComparisons(t *testing.T) {
	first, second := pair()
	s, err := Compute(first, second, aspect.General())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Comparisons) != 4 {
		t.Fatalf("expected 4 comparisons, got %d", len(s.Comparisons))
	}
	sun := s.Comparisons[0]
	if sun.Body != sky.Sun || sun.Separation != 5 {
		t.Fatalf("unexpected Sun comparison: %+v", sun)
	}
	if sun.Aspect == nil || sun.Aspect.Kind != aspect.Conjunction {
		t.Fatalf("expected Sun conjunction, got %+v", sun.Aspect)
	}
	if len(sun.Aspects) != 3 || sun.Aspects[0].Orb != 0 {
		t.Fatalf("expected 3 Sun aspects tightest first, got %+v", sun.Aspects)
	}
	for _, c := range s.Comparisons {
		if c.Body == sky.Venus && c.Aspect != nil {
			t.Fatalf("Venus pair is out of orb, got %+v", c.Aspect)
		}
	}
}

func TestDoubleWhammies(t *testing.T) {
	first, second := pair()
	s, err := Compute(first, second, aspect.General())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.DoubleWhammies) != 2 {
		t.Fatalf("expected 2 double whammies, got %+v", s.DoubleWhammies)
	}
	w := s.DoubleWhammies[0]
	if w.A != sky.Sun || w.B != sky.Moon {
		t.Fatalf("expected Sun/Moon first, got %s/%s", w.A, w.B)
	}
	if w.Forward.A != sky.Sun || w.Forward.Kind != aspect.Trine || w.Reverse.A != sky.Moon || w.Reverse.Kind != aspect.Square {
		t.Fatalf("unexpected whammy legs: %+v", w)
	}
	if s.DoubleWhammies[1].A != sky.Sun || s.DoubleWhammies[1].B != sky.Venus {
		t.Fatalf("expected Sun/Venus second, got %+v", s.DoubleWhammies[1])
	}
}

func TestComputeMissingChart(t *testing.T) {
	first, _ := pair()
	if _, err := Compute(first, nil, aspect.General()); err == nil {
		t.Fatalf("expected error")
	}
}
