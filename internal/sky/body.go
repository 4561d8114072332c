package sky

import (
	"sort"
	"strings"
)

// Body identifies a solar-system body from the fixed roster.
type Body string

const (
	Sun       Body = "Sun"
	Moon      Body = "Moon"
	Mercury   Body = "Mercury"
	Venus     Body = "Venus"
	Earth     Body = "Earth"
	Mars      Body = "Mars"
	Jupiter   Body = "Jupiter"
	Saturn    Body = "Saturn"
	NorthNode Body = "NorthNode"
	SouthNode Body = "SouthNode"
)

var roster = []Body{Sun, Moon, Mercury, Venus, Earth, Mars, Jupiter, Saturn, NorthNode, SouthNode}

var classical = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}

var rosterIndex = func() map[Body]int {
	index := make(map[Body]int, len(roster))
	for i, body := range roster {
		index[body] = i
	}
	return index
}()

// Roster returns every known body in canonical order.
func Roster() []Body {
	return append([]Body(nil), roster...)
}

// Classical returns the seven traditional bodies.
func Classical() []Body {
	return append([]Body(nil), classical...)
}

// Index returns the roster position of b, or len(roster) for unknown bodies
// so they sort last.
func Index(b Body) int {
	if i, ok := rosterIndex[b]; ok {
		return i
	}
	return len(roster)
}

func (b Body) Valid() bool {
	_, ok := rosterIndex[b]
	return ok
}

func (b Body) IsClassical() bool {
	for _, item := range classical {
		if item == b {
			return true
		}
	}
	return false
}

// ParseBody resolves a case-insensitive body name. "north node" style spellings
// are accepted for the lunar nodes.
func ParseBody(name string) (Body, bool) {
	key := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.TrimSpace(name)))
	for _, body := range roster {
		if strings.ToLower(string(body)) == key {
			return body, true
		}
	}
	return "", false
}

// SortBodies orders bodies by roster position in place.
func SortBodies(bodies []Body) {
	sort.SliceStable(bodies, func(i, j int) bool {
		return Index(bodies[i]) < Index(bodies[j])
	})
}
