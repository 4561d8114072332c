// Package shift compares two position maps body by body.
package shift

import (
	"fmt"
	"math"
	"strings"

	"astrolabe/internal/sky"
)

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "forward":
		*d = Forward
	case "backward":
		*d = Backward
	default:
		return fmt.Errorf("unknown direction %q", string(text))
	}
	return nil
}

// Record describes how one body moved between two position maps. Delta is
// the shortest-arc distance in degrees.
type Record struct {
	Body      sky.Body  `json:"body"`
	From      sky.Sign  `json:"from"`
	To        sky.Sign  `json:"to"`
	Shifted   bool      `json:"shifted"`
	Delta     float64   `json:"delta"`
	Direction Direction `json:"direction"`
}

// Analyze diffs the bodies present in both maps, in roster order. Bodies
// present on only one side are skipped.
func Analyze(from, to sky.Positions) []Record {
	records := make([]Record, 0, len(from))
	for _, body := range from.Bodies() {
		after, ok := to[body]
		if !ok {
			continue
		}
		before := from[body]
		signed := sky.SignedDelta(before.Longitude, after.Longitude)
		dir := Forward
		if after.Longitude-before.Longitude < 0 {
			dir = Backward
		}
		records = append(records, Record{
			Body:      body,
			From:      before.Sign,
			To:        after.Sign,
			Shifted:   before.Sign != after.Sign,
			Delta:     math.Abs(signed),
			Direction: dir,
		})
	}
	return records
}

// Ingresses keeps the records whose sign changed.
func Ingresses(records []Record) []Record {
	out := make([]Record, 0)
	for _, r := range records {
		if r.Shifted {
			out = append(out, r)
		}
	}
	return out
}
