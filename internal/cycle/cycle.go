// Package cycle locates a moment within the solar magnetic cycle.
package cycle

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Years is the nominal cycle length used past either end of the table.
const Years = 11

// Record is one solar cycle. FlipStart and FlipEnd bound the polar field
// reversal. Observed is false for estimated entries.
type Record struct {
	Number    int       `json:"number" yaml:"number"`
	Start     time.Time `json:"start" yaml:"start"`
	FlipStart time.Time `json:"flip_start" yaml:"flip_start"`
	FlipEnd   time.Time `json:"flip_end" yaml:"flip_end"`
	Observed  bool      `json:"observed" yaml:"observed"`
}

// Phase places a moment inside its cycle.
type Phase struct {
	Record     Record    `json:"record"`
	End        time.Time `json:"end"`
	Phase      float64   `json:"phase"`
	Ascending  bool      `json:"ascending"`
	InReversal bool      `json:"in_reversal"`
}

var ErrEmptyTable = errors.New("cycle table has no records")

// Table is an immutable, start-ordered list of cycles.
type Table struct {
	records []Record
}

// NewTable validates and copies records. Starts must strictly increase and
// every reversal window must be ordered.
func NewTable(records []Record) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}
	sorted := append([]Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	for i, rec := range sorted {
		if rec.FlipEnd.Before(rec.FlipStart) {
			return nil, fmt.Errorf("cycle %d: reversal ends before it starts", rec.Number)
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if !prev.Start.Before(rec.Start) {
			return nil, fmt.Errorf("cycle %d: start %s duplicates cycle %d", rec.Number, rec.Start.Format(time.DateOnly), prev.Number)
		}
		if rec.Number <= prev.Number {
			return nil, fmt.Errorf("cycle %d: numbers must increase with start date", rec.Number)
		}
	}
	return &Table{records: sorted}, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DefaultTable holds the cycles with magnetograph-era polar field records.
func DefaultTable() *Table {
	table, err := NewTable([]Record{
		{Number: 19, Start: date(1954, time.April, 1), FlipStart: date(1957, time.November, 1), FlipEnd: date(1958, time.November, 1), Observed: true},
		{Number: 20, Start: date(1964, time.October, 1), FlipStart: date(1969, time.June, 1), FlipEnd: date(1971, time.December, 1), Observed: true},
		{Number: 21, Start: date(1976, time.June, 1), FlipStart: date(1979, time.September, 1), FlipEnd: date(1981, time.June, 1), Observed: true},
		{Number: 22, Start: date(1986, time.September, 1), FlipStart: date(1989, time.September, 1), FlipEnd: date(1991, time.February, 1), Observed: true},
		{Number: 23, Start: date(1996, time.August, 1), FlipStart: date(2000, time.May, 1), FlipEnd: date(2001, time.August, 1), Observed: true},
		{Number: 24, Start: date(2008, time.December, 1), FlipStart: date(2012, time.June, 1), FlipEnd: date(2015, time.November, 1), Observed: true},
		{Number: 25, Start: date(2019, time.December, 1), FlipStart: date(2023, time.June, 1), FlipEnd: date(2025, time.June, 1), Observed: false},
	})
	if err != nil {
		panic(err)
	}
	return table
}

func (t *Table) Records() []Record {
	return append([]Record(nil), t.records...)
}

// Lookup returns the cycle whose [start, next start) interval contains at.
// A moment exactly on a start belongs to the cycle that starts there.
func (t *Table) Lookup(at time.Time) Record {
	rec, _ := t.span(at)
	return rec
}

// PhaseAt derives phase, direction and reversal status for at.
func (t *Table) PhaseAt(at time.Time) Phase {
	rec, end := t.span(at)
	total := end.Sub(rec.Start).Seconds()
	elapsed := at.Sub(rec.Start).Seconds()
	phase := 0.0
	if total > 0 {
		phase = elapsed / total
	}
	if phase >= 1 {
		phase = 0
	}

	mid := rec.FlipStart.Add(rec.FlipEnd.Sub(rec.FlipStart) / 2)
	return Phase{
		Record:     rec,
		End:        end,
		Phase:      phase,
		Ascending:  at.Before(mid),
		InReversal: !at.Before(rec.FlipStart) && !at.After(rec.FlipEnd),
	}
}

func (t *Table) span(at time.Time) (Record, time.Time) {
	first := t.records[0]
	last := t.records[len(t.records)-1]

	if at.Before(first.Start) {
		k := blocksBetween(at, first.Start)
		for first.Start.AddDate(-Years*k, 0, 0).After(at) {
			k++
		}
		for k > 1 && !first.Start.AddDate(-Years*(k-1), 0, 0).After(at) {
			k--
		}
		start := first.Start.AddDate(-Years*k, 0, 0)
		return estimated(first.Number-k, start), start.AddDate(Years, 0, 0)
	}

	lastEnd := last.Start.AddDate(Years, 0, 0)
	if !at.Before(lastEnd) {
		k := blocksBetween(last.Start, at)
		for k > 1 && last.Start.AddDate(Years*k, 0, 0).After(at) {
			k--
		}
		for !last.Start.AddDate(Years*(k+1), 0, 0).After(at) {
			k++
		}
		start := last.Start.AddDate(Years*k, 0, 0)
		return estimated(last.Number+k, start), start.AddDate(Years, 0, 0)
	}

	i := sort.Search(len(t.records), func(i int) bool {
		return t.records[i].Start.After(at)
	})
	rec := t.records[i-1]
	if i < len(t.records) {
		return rec, t.records[i].Start
	}
	return rec, lastEnd
}

// estimated synthesizes a cycle with a two-year reversal window centred 5.5
// years after start.
func estimated(number int, start time.Time) Record {
	return Record{
		Number:    number,
		Start:     start,
		FlipStart: start.AddDate(4, 6, 0),
		FlipEnd:   start.AddDate(6, 6, 0),
		Observed:  false,
	}
}

// blocksBetween estimates whole cycles from a to b without overflowing
// time.Duration for distant dates.
func blocksBetween(a, b time.Time) int {
	years := float64(b.Unix()-a.Unix()) / (365.25 * 86400)
	k := int(years / Years)
	if k < 1 {
		k = 1
	}
	return k
}
