// Package pattern finds three-body configurations in a chart's aspects.
package pattern

import (
	"fmt"

	"astrolabe/internal/aspect"
	"astrolabe/internal/sky"
)

type Kind int

const (
	GrandTrine Kind = iota
	TSquare
	Yod
)

var kindNames = map[Kind]string{
	GrandTrine: "Grand Trine",
	TSquare:    "T-Square",
	Yod:        "Yod",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("invalid pattern kind %d", int(k))
	}
	return []byte(name), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown pattern kind %q", string(text))
}

// Pattern is a triple of bodies bound by three aspects. Apex is set for
// T-Squares and Yods.
type Pattern struct {
	Kind    Kind             `json:"kind"`
	Bodies  [3]sky.Body      `json:"bodies"`
	Aspects [3]aspect.Aspect `json:"aspects"`
	Apex    *sky.Body        `json:"apex,omitempty"`
}

type pairKey [2]sky.Body

func keyOf(a, b sky.Body) pairKey {
	if sky.Index(b) < sky.Index(a) {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Detect enumerates every triple of bodies that appear in aspects and
// reports Grand Trines, T-Squares and Yods, each exactly once.
func Detect(aspects []aspect.Aspect) []Pattern {
	byPair := make(map[pairKey]aspect.Aspect, len(aspects))
	seenBody := make(map[sky.Body]struct{})
	bodies := make([]sky.Body, 0)
	for _, a := range aspects {
		key := keyOf(a.A, a.B)
		if _, exists := byPair[key]; !exists {
			byPair[key] = a
		}
		for _, body := range []sky.Body{a.A, a.B} {
			if _, ok := seenBody[body]; ok {
				continue
			}
			seenBody[body] = struct{}{}
			bodies = append(bodies, body)
		}
	}
	sky.SortBodies(bodies)

	patterns := make([]Pattern, 0)
	if len(bodies) < 3 {
		return patterns
	}

	seen := make(map[string]struct{})
	add := func(p Pattern) {
		key := fmt.Sprintf("%s|%s|%s|%s", p.Kind, p.Bodies[0], p.Bodies[1], p.Bodies[2])
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		patterns = append(patterns, p)
	}

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			for k := j + 1; k < len(bodies); k++ {
				triple := [3]sky.Body{bodies[i], bodies[j], bodies[k]}
				ab, okAB := byPair[keyOf(triple[0], triple[1])]
				bc, okBC := byPair[keyOf(triple[1], triple[2])]
				ac, okAC := byPair[keyOf(triple[0], triple[2])]
				if !okAB || !okBC || !okAC {
					continue
				}
				edges := [3]aspect.Aspect{ab, bc, ac}

				if ab.Kind == aspect.Trine && bc.Kind == aspect.Trine && ac.Kind == aspect.Trine {
					add(Pattern{Kind: GrandTrine, Bodies: triple, Aspects: edges})
				}
				if apex, ok := apexOf(triple, edges, aspect.Opposition, aspect.Square); ok {
					add(Pattern{Kind: TSquare, Bodies: triple, Aspects: edges, Apex: &apex})
				}
				if apex, ok := apexOf(triple, edges, aspect.Sextile, aspect.Quincunx); ok {
					add(Pattern{Kind: Yod, Bodies: triple, Aspects: edges, Apex: &apex})
				}
			}
		}
	}
	return patterns
}

// apexOf looks for one base edge of kind base whose endpoints both reach the
// remaining body through legs of kind leg. edges are ordered (0,1), (1,2),
// (0,2) over triple.
func apexOf(triple [3]sky.Body, edges [3]aspect.Aspect, base, leg aspect.Kind) (sky.Body, bool) {
	// for each edge, the body not on it and the two other edges
	layout := [3]struct {
		apex int
		legs [2]int
	}{
		{apex: 2, legs: [2]int{1, 2}},
		{apex: 0, legs: [2]int{0, 2}},
		{apex: 1, legs: [2]int{0, 1}},
	}
	for i, edge := range edges {
		if edge.Kind != base {
			continue
		}
		l := layout[i]
		if edges[l.legs[0]].Kind == leg && edges[l.legs[1]].Kind == leg {
			return triple[l.apex], true
		}
	}
	return "", false
}

// Filter keeps patterns of the given kind.
func Filter(patterns []Pattern, kind Kind) []Pattern {
	out := make([]Pattern, 0)
	for _, p := range patterns {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}
