package sky

import (
	"fmt"
	"strings"
)

// Sign is one of the twelve 30° zodiac segments, starting at Aries.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignAt returns the sign for a sign index, wrapping modulo 12.
func SignAt(index int) Sign {
	return Sign(((index % 12) + 12) % 12)
}

func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Start is the ecliptic longitude where the sign begins.
func (s Sign) Start() float64 {
	return float64(s) * 30
}

func (s Sign) MarshalText() ([]byte, error) {
	if s < Aries || s > Pisces {
		return nil, fmt.Errorf("invalid sign %d", int(s))
	}
	return []byte(signNames[s]), nil
}

func (s *Sign) UnmarshalText(text []byte) error {
	parsed, ok := ParseSign(string(text))
	if !ok {
		return fmt.Errorf("unknown sign %q", string(text))
	}
	*s = parsed
	return nil
}

func ParseSign(name string) (Sign, bool) {
	key := strings.TrimSpace(name)
	for i, candidate := range signNames {
		if strings.EqualFold(candidate, key) {
			return Sign(i), true
		}
	}
	return 0, false
}
