// Package aspect detects angular relationships between pairs of longitudes.
package aspect

import (
	"math"
	"sort"

	"astrolabe/internal/sky"
)

// Aspect relates bodies A and B. For aspects within one chart A precedes B in
// roster order; for cross-chart aspects A belongs to the left chart.
type Aspect struct {
	A          sky.Body `json:"a"`
	B          sky.Body `json:"b"`
	Kind       Kind     `json:"kind"`
	Separation float64  `json:"separation"`
	Orb        float64  `json:"orb"`
	Exact      bool     `json:"exact"`
}

// Involves reports whether body is one side of the aspect.
func (a Aspect) Involves(body sky.Body) bool {
	return a.A == body || a.B == body
}

// Other returns the body on the other side from body.
func (a Aspect) Other(body sky.Body) sky.Body {
	if a.A == body {
		return a.B
	}
	return a.A
}

// Between tests two longitudes against cfg. The first kind, in ascending angle
// order, whose orb admits the separation wins.
func Between(a, b sky.Body, lonA, lonB float64, cfg Config) (Aspect, bool) {
	sep := sky.Separation(lonA, lonB)
	for _, kind := range kinds {
		allowed := cfg.Orb(kind)
		if allowed < 0 {
			continue
		}
		orb := math.Abs(sep - kind.Angle())
		if orb <= allowed {
			return Aspect{
				A:          a,
				B:          b,
				Kind:       kind,
				Separation: sep,
				Orb:        orb,
				Exact:      orb < cfg.ExactBelow,
			}, true
		}
	}
	return Aspect{}, false
}

// Find returns every aspect among the given longitudes, at most one per
// unordered pair, sorted tightest first.
func Find(longitudes map[sky.Body]float64, cfg Config) []Aspect {
	bodies := sortedKeys(longitudes)

	aspects := make([]Aspect, 0)
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if found, ok := Between(a, b, longitudes[a], longitudes[b], cfg); ok {
				aspects = append(aspects, found)
			}
		}
	}
	SortByOrb(aspects)
	return aspects
}

// Cross relates every left body to every right body. Same-named bodies are
// paired too; they belong to different charts.
func Cross(left, right map[sky.Body]float64, cfg Config) []Aspect {
	leftBodies := sortedKeys(left)
	rightBodies := sortedKeys(right)

	aspects := make([]Aspect, 0)
	for _, a := range leftBodies {
		for _, b := range rightBodies {
			if found, ok := Between(a, b, left[a], right[b], cfg); ok {
				aspects = append(aspects, found)
			}
		}
	}
	SortByOrb(aspects)
	return aspects
}

// SortByOrb orders aspects tightest first. The sort is stable so equal orbs
// keep their roster order.
func SortByOrb(aspects []Aspect) {
	sort.SliceStable(aspects, func(i, j int) bool {
		return aspects[i].Orb < aspects[j].Orb
	})
}

// Filter keeps the aspects involving body.
func Filter(aspects []Aspect, body sky.Body) []Aspect {
	out := make([]Aspect, 0)
	for _, a := range aspects {
		if a.Involves(body) {
			out = append(out, a)
		}
	}
	return out
}

func sortedKeys(m map[sky.Body]float64) []sky.Body {
	bodies := make([]sky.Body, 0, len(m))
	for body := range m {
		bodies = append(bodies, body)
	}
	sky.SortBodies(bodies)
	return bodies
}
