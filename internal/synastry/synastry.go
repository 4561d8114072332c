// Package synastry compares two independently computed charts.
package synastry

import (
	"errors"

	"astrolabe/internal/aspect"
	"astrolabe/internal/chart"
	"astrolabe/internal/house"
	"astrolabe/internal/sky"
)

var ErrMissingChart = errors.New("synastry needs two charts")

// Overlay places one chart's body in the other chart's houses.
type Overlay struct {
	Body      sky.Body `json:"body"`
	Longitude float64  `json:"longitude"`
	House     int      `json:"house"`
}

// Comparison is one classical body viewed across both charts. Aspects holds
// every cross aspect from the body in the first chart, tightest first.
type Comparison struct {
	Body       sky.Body        `json:"body"`
	Separation float64         `json:"separation"`
	Aspect     *aspect.Aspect  `json:"aspect,omitempty"`
	Aspects    []aspect.Aspect `json:"aspects"`
}

// Whammy is a pair of bodies aspecting each other in both directions: A in
// the first chart to B in the second, and B in the first to A in the second.
type Whammy struct {
	A       sky.Body      `json:"a"`
	B       sky.Body      `json:"b"`
	Forward aspect.Aspect `json:"forward"`
	Reverse aspect.Aspect `json:"reverse"`
}

type Synastry struct {
	Aspects        []aspect.Aspect `json:"aspects"`
	FirstInSecond  []Overlay       `json:"first_in_second,omitempty"`
	SecondInFirst  []Overlay       `json:"second_in_first,omitempty"`
	Comparisons    []Comparison    `json:"comparisons"`
	DoubleWhammies []Whammy        `json:"double_whammies"`
}

// Compute relates first to second under cfg. Aspect A always belongs to
// first and B to second.
func Compute(first, second *chart.Chart, cfg aspect.Config) (*Synastry, error) {
	if first == nil || second == nil {
		return nil, ErrMissingChart
	}
	left := first.Bodies().Longitudes()
	right := second.Bodies().Longitudes()
	cross := aspect.Cross(left, right, cfg)

	s := &Synastry{
		Aspects:        cross,
		Comparisons:    compare(left, right, cross, cfg),
		DoubleWhammies: whammies(cross),
	}
	if second.HasHouses() {
		s.FirstInSecond = overlay(first.Bodies(), second.Houses)
	}
	if first.HasHouses() {
		s.SecondInFirst = overlay(second.Bodies(), first.Houses)
	}
	return s, nil
}

func overlay(positions sky.Positions, houses []house.House) []Overlay {
	out := make([]Overlay, 0, len(positions))
	for _, body := range positions.Bodies() {
		lon := positions[body].Longitude
		out = append(out, Overlay{Body: body, Longitude: lon, House: house.HouseFor(lon, houses)})
	}
	return out
}

func compare(left, right map[sky.Body]float64, cross []aspect.Aspect, cfg aspect.Config) []Comparison {
	out := make([]Comparison, 0)
	for _, body := range sky.Classical() {
		a, okA := left[body]
		b, okB := right[body]
		if !okA || !okB {
			continue
		}
		c := Comparison{
			Body:       body,
			Separation: sky.Separation(a, b),
			Aspects:    make([]aspect.Aspect, 0),
		}
		if found, ok := aspect.Between(body, body, a, b, cfg); ok {
			c.Aspect = &found
		}
		for _, x := range cross {
			if x.A == body {
				c.Aspects = append(c.Aspects, x)
			}
		}
		out = append(out, c)
	}
	return out
}

func whammies(cross []aspect.Aspect) []Whammy {
	index := make(map[[2]sky.Body]aspect.Aspect, len(cross))
	for _, x := range cross {
		index[[2]sky.Body{x.A, x.B}] = x
	}

	out := make([]Whammy, 0)
	seen := make(map[[2]sky.Body]struct{})
	for _, x := range cross {
		if x.A == x.B {
			continue
		}
		reverse, ok := index[[2]sky.Body{x.B, x.A}]
		if !ok {
			continue
		}
		p, q := x.A, x.B
		forward := x
		if sky.Index(q) < sky.Index(p) {
			p, q = q, p
			forward, reverse = reverse, forward
		}
		key := [2]sky.Body{p, q}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Whammy{A: p, B: q, Forward: forward, Reverse: reverse})
	}
	return out
}
