package aspect

import (
	"fmt"
	"strings"
)

// Kind is one of the six recognised angular relationships. Declaration order
// is ascending angle, which is also the match priority.
type Kind int

const (
	Conjunction Kind = iota
	Sextile
	Square
	Trine
	Quincunx
	Opposition
)

var kinds = []Kind{Conjunction, Sextile, Square, Trine, Quincunx, Opposition}

var kindNames = map[Kind]string{
	Conjunction: "Conjunction",
	Sextile:     "Sextile",
	Square:      "Square",
	Trine:       "Trine",
	Quincunx:    "Quincunx",
	Opposition:  "Opposition",
}

var kindAngles = map[Kind]float64{
	Conjunction: 0,
	Sextile:     60,
	Square:      90,
	Trine:       120,
	Quincunx:    150,
	Opposition:  180,
}

// Kinds returns every kind in ascending-angle order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

func (k Kind) Angle() float64 {
	return kindAngles[k]
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
		return nil, fmt.Errorf("invalid aspect kind %d", int(k))
	}
	return []byte(name), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown aspect kind %q", string(text))
	}
	*k = parsed
	return nil
}

func ParseKind(name string) (Kind, bool) {
	key := strings.TrimSpace(name)
	for _, kind := range kinds {
		if strings.EqualFold(kindNames[kind], key) {
			return kind, true
		}
	}
	return 0, false
}
