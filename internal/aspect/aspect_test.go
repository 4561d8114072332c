package aspect

import (
	"encoding/json"
	"math"
	"testing"

	"astrolabe/internal/sky"
)

func TestFindScenarios(t *testing.T) {
	t.Run("trine at exact angle", func(t *testing.T) {
		aspects := Find(map[sky.Body]float64{sky.Sun: 0, sky.Moon: 120}, General())
		if len(aspects) != 1 {
			t.Fatalf("expected 1 aspect, got %d", len(aspects))
		}
		if aspects[0].Kind != Trine || aspects[0].Orb != 0 || !aspects[0].Exact {
			t.Fatalf("unexpected aspect: %+v", aspects[0])
		}
	})

	t.Run("conjunction across zero", func(t *testing.T) {
		aspects := Find(map[sky.Body]float64{sky.Sun: 3, sky.Moon: 357}, General())
		if len(aspects) != 1 {
			t.Fatalf("expected 1 aspect, got %d", len(aspects))
		}
		if aspects[0].Kind != Conjunction || math.Abs(aspects[0].Orb-6) > 1e-9 || aspects[0].Exact {
			t.Fatalf("unexpected aspect: %+v", aspects[0])
		}
	})

	t.Run("three trines", func(t *testing.T) {
		aspects := Find(map[sky.Body]float64{sky.Sun: 0, sky.Moon: 120, sky.Mars: 240}, General())
		if len(aspects) != 3 {
			t.Fatalf("expected 3 aspects, got %d", len(aspects))
		}
		for _, a := range aspects {
			if a.Kind != Trine {
				t.Fatalf("expected trine, got %s", a.Kind)
			}
		}
	})

	t.Run("no aspects", func(t *testing.T) {
		aspects := Find(map[sky.Body]float64{sky.Sun: 0, sky.Moon: 35}, General())
		if aspects == nil || len(aspects) != 0 {
			t.Fatalf("expected empty non-nil list, got %v", aspects)
		}
	})
}

func TestBetweenExactSquare(t *testing.T) {
	a, ok := Between(sky.Sun, sky.Mars, 10, 100, General())
	if !ok {
		t.Fatalf("expected aspect")
	}
	if a.Kind != Square || a.Orb != 0 || !a.Exact {
		t.Fatalf("unexpected aspect: %+v", a)
	}
}

func TestBetweenSymmetric(t *testing.T) {
	for _, pair := range [][2]float64{{10, 75}, {200, 19}, {359, 121}, {45, 196}} {
		ab, okAB := Between(sky.Sun, sky.Moon, pair[0], pair[1], General())
		ba, okBA := Between(sky.Moon, sky.Sun, pair[1], pair[0], General())
		if okAB != okBA || ab.Kind != ba.Kind || ab.Orb != ba.Orb {
			t.Fatalf("asymmetric result for %v: %+v vs %+v", pair, ab, ba)
		}
	}
}

func TestExactnessThresholdIsConfigured(t *testing.T) {
	general, ok := Between(sky.Sun, sky.Venus, 0, 60.7, General())
	if !ok || !general.Exact {
		t.Fatalf("expected exact general sextile, got %+v", general)
	}
	progressed, ok := Between(sky.Sun, sky.Venus, 0, 60.7, Progression())
	if !ok || progressed.Exact {
		t.Fatalf("expected inexact progressed sextile, got %+v", progressed)
	}
	if _, ok := Between(sky.Sun, sky.Venus, 0, 62, Progression()); ok {
		t.Fatalf("expected 2 degree sextile to fall outside progression orb")
	}
}

func TestTransitOrbsDiffer(t *testing.T) {
	if _, ok := Between(sky.Sun, sky.Mars, 0, 95, General()); !ok {
		t.Fatalf("expected general square at 5 degrees")
	}
	if _, ok := Between(sky.Sun, sky.Mars, 0, 65, Transit()); ok {
		t.Fatalf("expected transit sextile orb of 4 to reject 5 degrees")
	}
}

func TestFindSortedByOrb(t *testing.T) {
	aspects := Find(map[sky.Body]float64{
		sky.Sun:     0,
		sky.Moon:    93,
		sky.Mercury: 178.5,
		sky.Venus:   241,
	}, General())
	if len(aspects) < 3 {
		t.Fatalf("expected at least 3 aspects, got %d", len(aspects))
	}
	for i := 1; i < len(aspects); i++ {
		if aspects[i-1].Orb > aspects[i].Orb {
			t.Fatalf("aspects not sorted by orb: %+v", aspects)
		}
	}
	if aspects[0].A != sky.Sun || aspects[0].B != sky.Venus || aspects[0].Kind != Trine {
		t.Fatalf("expected sun/venus trine first, got %+v", aspects[0])
	}
}

func TestFindPairOrdering(t *testing.T) {
	aspects := Find(map[sky.Body]float64{sky.Saturn: 0, sky.Sun: 180}, General())
	if len(aspects) != 1 || aspects[0].A != sky.Sun || aspects[0].B != sky.Saturn {
		t.Fatalf("expected Sun before Saturn, got %+v", aspects)
	}
}

func TestCross(t *testing.T) {
	left := map[sky.Body]float64{sky.Sun: 10, sky.Moon: 200}
	right := map[sky.Body]float64{sky.Sun: 12, sky.Moon: 100}
	aspects := Cross(left, right, General())

	var sawSunSun, sawMoonSun bool
	for _, a := range aspects {
		if a.A == sky.Sun && a.B == sky.Sun && a.Kind == Conjunction {
			sawSunSun = true
		}
		if a.A == sky.Moon && a.B == sky.Sun && a.Kind == Opposition {
			sawMoonSun = true
		}
	}
	if !sawSunSun || !sawMoonSun {
		t.Fatalf("missing cross aspects: %+v", aspects)
	}
}

func TestConfigByName(t *testing.T) {
	for _, name := range []string{"general", "Transit", "progression"} {
		if _, err := ConfigByName(name); err != nil {
			t.Fatalf("expected %s to resolve: %v", name, err)
		}
	}
	if _, err := ConfigByName("wide"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWithOrbs(t *testing.T) {
	base := General()
	tightened := base.WithOrbs(map[Kind]float64{Conjunction: 2})
	if tightened.Orb(Conjunction) != 2 {
		t.Fatalf("expected override")
	}
	if base.Orb(Conjunction) != 8 {
		t.Fatalf("expected base unchanged")
	}
}

func TestKindJSON(t *testing.T) {
	payload, err := json.Marshal(Aspect{A: sky.Sun, B: sky.Moon, Kind: Quincunx})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Aspect
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Kind != Quincunx {
		t.Fatalf("expected Quincunx, got %s", decoded.Kind)
	}
}
