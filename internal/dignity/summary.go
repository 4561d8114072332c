package dignity

import (
	"fmt"
	"strings"

	"astrolabe/internal/sky"
)

// AllPeregrine is the summary text when no body holds a dignity or debility.
const AllPeregrine = "All planets are peregrine, with no essential dignities or debilities."

type Placement struct {
	Body  sky.Body `json:"body"`
	Sign  sky.Sign `json:"sign"`
	State State    `json:"state"`
}

// Summary partitions a chart's bodies into the five states.
type Summary struct {
	Domicile   []Placement `json:"domicile"`
	Exaltation []Placement `json:"exaltation"`
	Detriment  []Placement `json:"detriment"`
	Fall       []Placement `json:"fall"`
	Peregrine  []Placement `json:"peregrine"`
	Score      int         `json:"score"`
	Text       string      `json:"text"`
}

// Evaluate classifies every position that has a table row.
func (t *Table) Evaluate(positions sky.Positions) Summary {
	summary := Summary{
		Domicile:   []Placement{},
		Exaltation: []Placement{},
		Detriment:  []Placement{},
		Fall:       []Placement{},
		Peregrine:  []Placement{},
	}
	for _, body := range positions.Bodies() {
		if !t.Has(body) {
			continue
		}
		sign := positions[body].Sign
		state := t.Get(body, sign)
		placement := Placement{Body: body, Sign: sign, State: state}
		switch state {
		case Domicile:
			summary.Domicile = append(summary.Domicile, placement)
		case Exaltation:
			summary.Exaltation = append(summary.Exaltation, placement)
		case Detriment:
			summary.Detriment = append(summary.Detriment, placement)
		case Fall:
			summary.Fall = append(summary.Fall, placement)
		default:
			summary.Peregrine = append(summary.Peregrine, placement)
		}
		summary.Score += state.Weight()
	}
	summary.Text = summaryText(summary)
	return summary
}

func summaryText(s Summary) string {
	dignified := append(append([]Placement{}, s.Domicile...), s.Exaltation...)
	debilitated := append(append([]Placement{}, s.Detriment...), s.Fall...)
	if len(dignified) == 0 && len(debilitated) == 0 {
		return AllPeregrine
	}

	var parts []string
	if len(dignified) > 0 {
		parts = append(parts, fmt.Sprintf("Dignified (%d): %s.", len(dignified), describe(dignified)))
	}
	if len(debilitated) > 0 {
		parts = append(parts, fmt.Sprintf("Debilitated (%d): %s.", len(debilitated), describe(debilitated)))
	}
	return strings.Join(parts, " ")
}

func describe(placements []Placement) string {
	items := make([]string, 0, len(placements))
	for _, p := range placements {
		items = append(items, fmt.Sprintf("%s in %s (%s)", p.Body, p.Sign, p.State))
	}
	return strings.Join(items, ", ")
}

// Reception is a pair of bodies each in the other's domicile.
type Reception struct {
	A     sky.Body `json:"a"`
	B     sky.Body `json:"b"`
	SignA sky.Sign `json:"sign_a"`
	SignB sky.Sign `json:"sign_b"`
}

// MutualReceptions returns every pair where A sits in a sign B rules and B
// sits in a sign A rules.
func (t *Table) MutualReceptions(positions sky.Positions) []Reception {
	receptions := make([]Reception, 0)
	bodies := make([]sky.Body, 0, len(positions))
	for _, body := range positions.Bodies() {
		if t.Has(body) {
			bodies = append(bodies, body)
		}
	}

	seen := make(map[string]struct{})
	for _, a := range bodies {
		for _, b := range bodies {
			if a == b {
				continue
			}
			key := pairKey(a, b)
			if _, ok := seen[key]; ok {
				continue
			}
			signA := positions[a].Sign
			signB := positions[b].Sign
			if containsSign(t.Domiciles(b), signA) && containsSign(t.Domiciles(a), signB) {
				seen[key] = struct{}{}
				receptions = append(receptions, Reception{A: a, B: b, SignA: signA, SignB: signB})
			}
		}
	}
	return receptions
}

func pairKey(a, b sky.Body) string {
	if sky.Index(b) < sky.Index(a) {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}
