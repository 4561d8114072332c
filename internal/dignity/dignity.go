// Package dignity classifies a body's essential strength by the sign it
// occupies.
package dignity

import (
	"fmt"
	"strings"

	"astrolabe/internal/sky"
)

type State int

const (
	Peregrine State = iota
	Domicile
	Exaltation
	Detriment
	Fall
)

var stateNames = map[State]string{
	Peregrine:  "peregrine",
	Domicile:   "domicile",
	Exaltation: "exaltation",
	Detriment:  "detriment",
	Fall:       "fall",
}

var stateWeights = map[State]int{
	Domicile:   2,
	Exaltation: 1,
	Peregrine:  0,
	Detriment:  -1,
	Fall:       -2,
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) Weight() int {
	return stateWeights[s]
}

func (s State) MarshalText() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("invalid dignity state %d", int(s))
	}
	return []byte(name), nil
}

func (s *State) UnmarshalText(text []byte) error {
	key := strings.ToLower(strings.TrimSpace(string(text)))
	for state, name := range stateNames {
		if name == key {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown dignity state %q", string(text))
}

// Rulership lists the signs where a body is strengthened or weakened.
type Rulership struct {
	Domicile   []sky.Sign
	Exaltation []sky.Sign
	Detriment  []sky.Sign
	Fall       []sky.Sign
}

// Table is an immutable rulership table. Build it once and share it.
type Table struct {
	rows map[sky.Body]Rulership
}

func NewTable(rows map[sky.Body]Rulership) *Table {
	copied := make(map[sky.Body]Rulership, len(rows))
	for body, row := range rows {
		copied[body] = Rulership{
			Domicile:   append([]sky.Sign(nil), row.Domicile...),
			Exaltation: append([]sky.Sign(nil), row.Exaltation...),
			Detriment:  append([]sky.Sign(nil), row.Detriment...),
			Fall:       append([]sky.Sign(nil), row.Fall...),
		}
	}
	return &Table{rows: copied}
}

// DefaultTable is the traditional table for the seven classical bodies.
func DefaultTable() *Table {
	return NewTable(map[sky.Body]Rulership{
		sky.Sun: {
			Domicile:   []sky.Sign{sky.Leo},
			Exaltation: []sky.Sign{sky.Aries},
			Detriment:  []sky.Sign{sky.Aquarius},
			Fall:       []sky.Sign{sky.Libra},
		},
		sky.Moon: {
			Domicile:   []sky.Sign{sky.Cancer},
			Exaltation: []sky.Sign{sky.Taurus},
			Detriment:  []sky.Sign{sky.Capricorn},
			Fall:       []sky.Sign{sky.Scorpio},
		},
		sky.Mercury: {
			Domicile:   []sky.Sign{sky.Gemini, sky.Virgo},
			Exaltation: []sky.Sign{sky.Aquarius},
			Detriment:  []sky.Sign{sky.Sagittarius, sky.Pisces},
			Fall:       []sky.Sign{sky.Leo},
		},
		sky.Venus: {
			Domicile:   []sky.Sign{sky.Taurus, sky.Libra},
			Exaltation: []sky.Sign{sky.Pisces},
			Detriment:  []sky.Sign{sky.Scorpio, sky.Aries},
			Fall:       []sky.Sign{sky.Virgo},
		},
		sky.Mars: {
			Domicile:   []sky.Sign{sky.Aries, sky.Scorpio},
			Exaltation: []sky.Sign{sky.Capricorn},
			Detriment:  []sky.Sign{sky.Libra, sky.Taurus},
			Fall:       []sky.Sign{sky.Cancer},
		},
		sky.Jupiter: {
			Domicile:   []sky.Sign{sky.Sagittarius, sky.Pisces},
			Exaltation: []sky.Sign{sky.Cancer},
			Detriment:  []sky.Sign{sky.Gemini, sky.Virgo},
			Fall:       []sky.Sign{sky.Capricorn},
		},
		sky.Saturn: {
			Domicile:   []sky.Sign{sky.Capricorn, sky.Aquarius},
			Exaltation: []sky.Sign{sky.Libra},
			Detriment:  []sky.Sign{sky.Cancer, sky.Leo},
			Fall:       []sky.Sign{sky.Aries},
		},
	})
}

// Has reports whether the table has a row for body.
func (t *Table) Has(body sky.Body) bool {
	if t == nil {
		return false
	}
	_, ok := t.rows[body]
	return ok
}

// Get classifies body in sign. Bodies or signs without an entry are
// peregrine.
func (t *Table) Get(body sky.Body, sign sky.Sign) State {
	if t == nil {
		return Peregrine
	}
	row, ok := t.rows[body]
	if !ok {
		return Peregrine
	}
	switch {
	case containsSign(row.Domicile, sign):
		return Domicile
	case containsSign(row.Exaltation, sign):
		return Exaltation
	case containsSign(row.Detriment, sign):
		return Detriment
	case containsSign(row.Fall, sign):
		return Fall
	default:
		return Peregrine
	}
}

func (t *Table) Weight(body sky.Body, sign sky.Sign) int {
	return t.Get(body, sign).Weight()
}

// Domiciles returns the signs body rules.
func (t *Table) Domiciles(body sky.Body) []sky.Sign {
	if t == nil {
		return nil
	}
	return append([]sky.Sign(nil), t.rows[body].Domicile...)
}

// Bodies returns the bodies with a row, in roster order.
func (t *Table) Bodies() []sky.Body {
	if t == nil {
		return nil
	}
	bodies := make([]sky.Body, 0, len(t.rows))
	for body := range t.rows {
		bodies = append(bodies, body)
	}
	sky.SortBodies(bodies)
	return bodies
}

func (t *Table) Row(body sky.Body) (Rulership, bool) {
	if t == nil {
		return Rulership{}, false
	}
	row, ok := t.rows[body]
	return row, ok
}

func containsSign(signs []sky.Sign, sign sky.Sign) bool {
	for _, s := range signs {
		if s == sign {
			return true
		}
	}
	return false
}
