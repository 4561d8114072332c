package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"astrolabe/internal/aspect"
	"astrolabe/internal/chart"
	"astrolabe/internal/cycle"
	"astrolabe/internal/frame"
	"astrolabe/internal/frame/frametest"
	"astrolabe/internal/motion"
	"astrolabe/internal/sky"
)

var birth = time.Date(1990, time.August, 3, 14, 30, 0, 0, time.UTC)

func testChart(t *testing.T) *chart.Chart {
	t.Helper()
	fake := frametest.New(birth, map[sky.Body]float64{
		sky.Sun:     130.123456,
		sky.Moon:    10,
		sky.Mercury: 250,
		sky.Venus:   40,
		sky.Mars:    100,
		sky.Jupiter: 200,
		sky.Saturn:  300,
	})
	b := chart.NewBuilder(frame.New(fake, frame.Tropical), chart.Tables{}, aspect.Set{})
	c, err := b.Build(chart.Request{Time: birth, Location: &sky.Location{}})
	if err != nil {
		t.Fatalf("building chart: %v", err)
	}
	return c
}

func TestFromChart(t *testing.T) {
	out := FromChart(testChart(t))

	if out.Timestamp != "1990-08-03T14:30:00Z" || out.Observer != "Earth" || out.Zodiac != "tropical" {
		t.Fatalf("unexpected header: %+v", out)
	}
	byBody := map[string]Position{}
	for _, p := range out.Positions {
		byBody[p.Body] = p
	}
	sun := byBody["Sun"]
	if sun.Longitude != 130.12 || sun.Sign != "Leo" || sun.Degree != 10.12 {
		t.Fatalf("expected rounded Sun in Leo, got %+v", sun)
	}
	if sun.House != 2 {
		t.Fatalf("expected Sun in the second house, got %d", sun.House)
	}
	if byBody["Moon"].House != 10 {
		t.Fatalf("expected Moon in the tenth house, got %d", byBody["Moon"].House)
	}
	if _, ok := byBody["NorthNode"]; !ok {
		t.Fatalf("expected nodes in the positions")
	}
	if out.Positions[0].Body != "Sun" {
		t.Fatalf("expected roster order, got %s first", out.Positions[0].Body)
	}
	if len(out.Houses) != 12 || out.Houses[0].Sign != "Cancer" {
		t.Fatalf("expected Cancer rising, got %+v", out.Houses)
	}
	if len(out.Patterns) != 1 || out.Patterns[0].Kind != "Grand Trine" {
		t.Fatalf("expected a grand trine, got %+v", out.Patterns)
	}
	if out.Dignity.Placements[0].Body != "Sun" || out.Dignity.Placements[0].State != "domicile" {
		t.Fatalf("expected the Sun first in domicile, got %+v", out.Dignity.Placements)
	}

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"kind":"Trine"`) {
		t.Fatalf("expected named aspect kinds in JSON, got %s", data)
	}
}

func TestFromChartWithoutHouses(t *testing.T) {
	c := testChart(t)
	c.Angles = nil
	c.Houses = nil
	out := FromChart(c)
	if out.Angles != nil || out.Houses != nil {
		t.Fatalf("expected no house data, got %+v", out.Houses)
	}
	for _, p := range out.Positions {
		if p.House != 0 {
			t.Fatalf("expected no house numbers, got %+v", p)
		}
	}
}

func TestFromCycle(t *testing.T) {
	phase := cycle.DefaultTable().PhaseAt(time.Date(1980, time.June, 1, 0, 0, 0, 0, time.UTC))
	out := FromCycle(phase)
	if out.Number != 21 || out.Start != "1976-06-01" || out.End != "1986-09-01" || !out.InReversal {
		t.Fatalf("unexpected cycle: %+v", out)
	}
}

func TestFromVoid(t *testing.T) {
	next := sky.Taurus
	until := birth.Add(10 * time.Hour)
	out := fromVoid(motion.Void{Void: true, Sign: sky.Aries, NextSign: &next, Until: &until, Steps: 5})
	if out.NextSign != "Taurus" || out.Until != "1990-08-04T00:30:00Z" || out.Aspect != nil {
		t.Fatalf("unexpected void: %+v", out)
	}
}
