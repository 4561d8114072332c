package frame

import (
	"fmt"
	"strings"
	"time"
)

type Zodiac int

const (
	Tropical Zodiac = iota
	Sidereal
)

func (z Zodiac) String() string {
	switch z {
	case Tropical:
		return "tropical"
	case Sidereal:
		return "sidereal"
	default:
		return "unknown"
	}
}

func (z Zodiac) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

func (z *Zodiac) UnmarshalText(text []byte) error {
	parsed, err := ParseZodiac(string(text))
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}

// ParseZodiac accepts "tropical" or "sidereal"; empty means tropical.
func ParseZodiac(name string) (Zodiac, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "tropical":
		return Tropical, nil
	case "sidereal":
		return Sidereal, nil
	default:
		return Tropical, fmt.Errorf("unknown zodiac %q", name)
	}
}

const (
	ayanamsaAt2000  = 23.853
	ayanamsaPerYear = 0.01397
	secondsPerYear  = 365.25 * 86400
)

var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// Ayanamsa is a linear approximation of the tropical/sidereal offset in
// degrees.
func Ayanamsa(t time.Time) float64 {
	years := float64(t.Unix()-j2000.Unix()) / secondsPerYear
	return ayanamsaAt2000 + ayanamsaPerYear*years
}
