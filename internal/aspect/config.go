package aspect

import (
	"fmt"
	"strings"
)

// Config is a named orb table. The three contexts use unrelated tables; they
// are kept as separate values rather than derived from one another.
type Config struct {
	Name       string
	Orbs       map[Kind]float64
	ExactBelow float64
}

const (
	NameGeneral     = "general"
	NameTransit     = "transit"
	NameProgression = "progression"
)

func General() Config {
	return Config{
		Name: NameGeneral,
		Orbs: map[Kind]float64{
			Conjunction: 8,
			Sextile:     6,
			Square:      7,
			Trine:       8,
			Quincunx:    6,
			Opposition:  8,
		},
		ExactBelow: 1,
	}
}

func Transit() Config {
	return Config{
		Name: NameTransit,
		Orbs: map[Kind]float64{
			Conjunction: 8,
			Sextile:     4,
			Square:      6,
			Trine:       6,
			Quincunx:    4,
			Opposition:  8,
		},
		ExactBelow: 1,
	}
}

func Progression() Config {
	orbs := make(map[Kind]float64, len(kinds))
	for _, kind := range kinds {
		orbs[kind] = 1.5
	}
	return Config{Name: NameProgression, Orbs: orbs, ExactBelow: 0.5}
}

// ConfigByName returns one of the built-in tables.
func ConfigByName(name string) (Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameGeneral, "":
		return General(), nil
	case NameTransit:
		return Transit(), nil
	case NameProgression:
		return Progression(), nil
	default:
		return Config{}, fmt.Errorf("unknown orb table %q", name)
	}
}

// Orb returns the allowed orb for kind; kinds missing from the table never
// match.
func (c Config) Orb(kind Kind) float64 {
	orb, ok := c.Orbs[kind]
	if !ok {
		return -1
	}
	return orb
}

// WithOrbs returns a copy of c with the given orbs replaced.
func (c Config) WithOrbs(overrides map[Kind]float64) Config {
	orbs := make(map[Kind]float64, len(c.Orbs))
	for kind, orb := range c.Orbs {
		orbs[kind] = orb
	}
	for kind, orb := range overrides {
		orbs[kind] = orb
	}
	return Config{Name: c.Name, Orbs: orbs, ExactBelow: c.ExactBelow}
}

// Set is the trio of tables a chart builder carries.
type Set struct {
	General     Config
	Transit     Config
	Progression Config
}

func DefaultSet() Set {
	return Set{General: General(), Transit: Transit(), Progression: Progression()}
}
