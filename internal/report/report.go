// Package report flattens computed charts into rounded, string-keyed values
// for JSON output, tool results and stored snapshots.
package report

import (
	"time"

	"astrolabe/internal/aspect"
	"astrolabe/internal/chart"
	"astrolabe/internal/cycle"
	"astrolabe/internal/dignity"
	"astrolabe/internal/house"
	"astrolabe/internal/motion"
	"astrolabe/internal/pattern"
	"astrolabe/internal/progression"
	"astrolabe/internal/shift"
	"astrolabe/internal/sky"
	"astrolabe/internal/synastry"
)

// Places is the number of decimals kept in presented degrees.
const Places = 2

type Position struct {
	Body      string  `json:"body"`
	Longitude float64 `json:"longitude"`
	Sign      string  `json:"sign"`
	Degree    float64 `json:"degree"`
	House     int     `json:"house,omitempty"`
}

type Aspect struct {
	A          string  `json:"a"`
	B          string  `json:"b"`
	Kind       string  `json:"kind"`
	Separation float64 `json:"separation"`
	Orb        float64 `json:"orb"`
	Exact      bool    `json:"exact"`
}

type Pattern struct {
	Kind   string   `json:"kind"`
	Bodies []string `json:"bodies"`
	Apex   string   `json:"apex,omitempty"`
}

type Angles struct {
	Ascendant  float64 `json:"ascendant"`
	Midheaven  float64 `json:"midheaven"`
	Descendant float64 `json:"descendant"`
	ImumCoeli  float64 `json:"imum_coeli"`
}

type House struct {
	Number int     `json:"number"`
	Sign   string  `json:"sign"`
	Start  float64 `json:"start"`
}

type Placement struct {
	Body  string `json:"body"`
	Sign  string `json:"sign"`
	State string `json:"state"`
}

type Dignity struct {
	Score      int         `json:"score"`
	Text       string      `json:"text"`
	Placements []Placement `json:"placements"`
}

type Reception struct {
	A     string `json:"a"`
	B     string `json:"b"`
	SignA string `json:"sign_a"`
	SignB string `json:"sign_b"`
}

type Chart struct {
	Name       string        `json:"name,omitempty"`
	Timestamp  string        `json:"timestamp"`
	Observer   string        `json:"observer"`
	Zodiac     string        `json:"zodiac"`
	Location   *sky.Location `json:"location,omitempty"`
	Positions  []Position    `json:"positions"`
	Aspects    []Aspect      `json:"aspects"`
	Angles     *Angles       `json:"angles,omitempty"`
	Houses     []House       `json:"houses,omitempty"`
	Patterns   []Pattern     `json:"patterns"`
	Dignity    Dignity       `json:"dignity"`
	Receptions []Reception   `json:"receptions"`
}

type Shift struct {
	Body      string  `json:"body"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Shifted   bool    `json:"shifted"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"`
}

type Transit struct {
	Chart     Chart    `json:"chart"`
	ToNatal   []Aspect `json:"to_natal"`
	Shifts    []Shift  `json:"shifts"`
	Ingresses []Shift  `json:"ingresses"`
}

type Progression struct {
	Age            float64    `json:"age"`
	ProgressedTime string     `json:"progressed_time"`
	Positions      []Position `json:"positions"`
	Aspects        []Aspect   `json:"aspects"`
	ToNatal        []Aspect   `json:"to_natal"`
	SolarArc       float64    `json:"solar_arc"`
	Ascendant      *float64   `json:"ascendant,omitempty"`
	Houses         []House    `json:"houses,omitempty"`
}

type Overlay struct {
	Body      string  `json:"body"`
	Longitude float64 `json:"longitude"`
	House     int     `json:"house"`
}

type Comparison struct {
	Body       string  `json:"body"`
	Separation float64 `json:"separation"`
	Aspect     *Aspect `json:"aspect,omitempty"`
}

type Whammy struct {
	A       string `json:"a"`
	B       string `json:"b"`
	Forward string `json:"forward"`
	Reverse string `json:"reverse"`
}

type Synastry struct {
	First          string       `json:"first,omitempty"`
	Second         string       `json:"second,omitempty"`
	Aspects        []Aspect     `json:"aspects"`
	FirstInSecond  []Overlay    `json:"first_in_second,omitempty"`
	SecondInFirst  []Overlay    `json:"second_in_first,omitempty"`
	Comparisons    []Comparison `json:"comparisons"`
	DoubleWhammies []Whammy     `json:"double_whammies"`
}

type Motion struct {
	Body       string  `json:"body"`
	Speed      float64 `json:"speed"`
	Retrograde bool    `json:"retrograde"`
	Stationary bool    `json:"stationary"`
}

type Void struct {
	Void     bool    `json:"void"`
	Sign     string  `json:"sign"`
	NextSign string  `json:"next_sign,omitempty"`
	Until    string  `json:"until,omitempty"`
	Aspect   *Aspect `json:"aspect,omitempty"`
	Steps    int     `json:"steps"`
}

type Cycle struct {
	Number     int     `json:"number"`
	Observed   bool    `json:"observed"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	FlipStart  string  `json:"flip_start"`
	FlipEnd    string  `json:"flip_end"`
	Phase      float64 `json:"phase"`
	Ascending  bool    `json:"ascending"`
	InReversal bool    `json:"in_reversal"`
}

type Sky struct {
	Chart       Chart    `json:"chart"`
	Retrogrades []Motion `json:"retrogrades"`
	Void        Void     `json:"void_of_course"`
	Cycle       Cycle    `json:"solar_cycle"`
}

func round(v float64) float64 {
	return sky.Round(v, Places)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func FromChart(c *chart.Chart) Chart {
	out := Chart{
		Timestamp:  formatTime(c.Timestamp),
		Observer:   string(c.Observer),
		Zodiac:     c.Zodiac.String(),
		Location:   c.Location,
		Positions:  positions(c.Positions, c.Houses),
		Aspects:    aspects(c.Aspects),
		Patterns:   make([]Pattern, 0, len(c.Patterns)),
		Dignity:    fromDignity(c.Dignity),
		Receptions: make([]Reception, 0, len(c.Receptions)),
	}
	if c.Angles != nil {
		out.Angles = &Angles{
			Ascendant:  round(c.Angles.Ascendant),
			Midheaven:  round(c.Angles.Midheaven),
			Descendant: round(c.Angles.Descendant),
			ImumCoeli:  round(c.Angles.ImumCoeli),
		}
	}
	out.Houses = houses(c.Houses)
	for _, p := range c.Patterns {
		out.Patterns = append(out.Patterns, fromPattern(p))
	}
	for _, r := range c.Receptions {
		out.Receptions = append(out.Receptions, Reception{
			A:     string(r.A),
			B:     string(r.B),
			SignA: r.SignA.String(),
			SignB: r.SignB.String(),
		})
	}
	return out
}

func FromTransit(t *chart.Transit) Transit {
	return Transit{
		Chart:     FromChart(t.Chart),
		ToNatal:   aspects(t.ToNatal),
		Shifts:    shifts(t.Shifts),
		Ingresses: shifts(t.Ingresses),
	}
}

func FromProgression(p *progression.Progression) Progression {
	out := Progression{
		Age:            round(p.Age),
		ProgressedTime: formatTime(p.ProgressedTime),
		Positions:      positions(p.Positions, p.Houses),
		Aspects:        aspects(p.Aspects),
		ToNatal:        aspects(p.ToNatal),
		SolarArc:       round(p.SolarArc),
		Houses:         houses(p.Houses),
	}
	if p.Ascendant != nil {
		asc := round(*p.Ascendant)
		out.Ascendant = &asc
	}
	return out
}

func FromSynastry(s *synastry.Synastry) Synastry {
	out := Synastry{
		Aspects:        aspects(s.Aspects),
		FirstInSecond:  overlays(s.FirstInSecond),
		SecondInFirst:  overlays(s.SecondInFirst),
		Comparisons:    make([]Comparison, 0, len(s.Comparisons)),
		DoubleWhammies: make([]Whammy, 0, len(s.DoubleWhammies)),
	}
	for _, c := range s.Comparisons {
		item := Comparison{Body: string(c.Body), Separation: round(c.Separation)}
		if c.Aspect != nil {
			a := fromAspect(*c.Aspect)
			item.Aspect = &a
		}
		out.Comparisons = append(out.Comparisons, item)
	}
	for _, w := range s.DoubleWhammies {
		out.DoubleWhammies = append(out.DoubleWhammies, Whammy{
			A:       string(w.A),
			B:       string(w.B),
			Forward: w.Forward.Kind.String(),
			Reverse: w.Reverse.Kind.String(),
		})
	}
	return out
}

func FromReport(r *chart.Report) Sky {
	out := Sky{
		Chart:       FromChart(r.Chart),
		Retrogrades: make([]Motion, 0, len(r.Retrogrades)),
		Void:        fromVoid(r.Void),
		Cycle:       FromCycle(r.Cycle),
	}
	for _, m := range r.Retrogrades {
		out.Retrogrades = append(out.Retrogrades, fromMotion(m))
	}
	return out
}

func FromCycle(p cycle.Phase) Cycle {
	return Cycle{
		Number:     p.Record.Number,
		Observed:   p.Record.Observed,
		Start:      p.Record.Start.Format(time.DateOnly),
		End:        p.End.Format(time.DateOnly),
		FlipStart:  p.Record.FlipStart.Format(time.DateOnly),
		FlipEnd:    p.Record.FlipEnd.Format(time.DateOnly),
		Phase:      round(p.Phase),
		Ascending:  p.Ascending,
		InReversal: p.InReversal,
	}
}

func fromMotion(m motion.Motion) Motion {
	return Motion{
		Body:       string(m.Body),
		Speed:      sky.Round(m.Speed, 3),
		Retrograde: m.Retrograde,
		Stationary: m.Stationary,
	}
}

func fromVoid(v motion.Void) Void {
	out := Void{Void: v.Void, Sign: v.Sign.String(), Steps: v.Steps}
	if v.NextSign != nil {
		out.NextSign = v.NextSign.String()
	}
	if v.Until != nil {
		out.Until = formatTime(*v.Until)
	}
	if v.Aspect != nil {
		a := fromAspect(*v.Aspect)
		out.Aspect = &a
	}
	return out
}

func positions(ps sky.Positions, hs []house.House) []Position {
	out := make([]Position, 0, len(ps))
	for _, body := range ps.Bodies() {
		p := ps[body]
		item := Position{
			Body:      string(body),
			Longitude: round(p.Longitude),
			Sign:      p.Sign.String(),
			Degree:    round(p.Degree),
		}
		if len(hs) == 12 {
			item.House = house.HouseFor(p.Longitude, hs)
		}
		out = append(out, item)
	}
	return out
}

func aspects(as []aspect.Aspect) []Aspect {
	out := make([]Aspect, 0, len(as))
	for _, a := range as {
		out = append(out, fromAspect(a))
	}
	return out
}

func fromAspect(a aspect.Aspect) Aspect {
	return Aspect{
		A:          string(a.A),
		B:          string(a.B),
		Kind:       a.Kind.String(),
		Separation: round(a.Separation),
		Orb:        round(a.Orb),
		Exact:      a.Exact,
	}
}

func fromPattern(p pattern.Pattern) Pattern {
	out := Pattern{Kind: p.Kind.String(), Bodies: make([]string, 0, len(p.Bodies))}
	for _, body := range p.Bodies {
		out.Bodies = append(out.Bodies, string(body))
	}
	if p.Apex != nil {
		out.Apex = string(*p.Apex)
	}
	return out
}

func houses(hs []house.House) []House {
	if len(hs) == 0 {
		return nil
	}
	out := make([]House, 0, len(hs))
	for _, h := range hs {
		out = append(out, House{Number: h.Number, Sign: h.Sign.String(), Start: round(h.Start)})
	}
	return out
}

func fromDignity(s dignity.Summary) Dignity {
	out := Dignity{Score: s.Score, Text: s.Text, Placements: []Placement{}}
	for _, group := range [][]dignity.Placement{s.Domicile, s.Exaltation, s.Detriment, s.Fall, s.Peregrine} {
		for _, p := range group {
			out.Placements = append(out.Placements, Placement{
				Body:  string(p.Body),
				Sign:  p.Sign.String(),
				State: p.State.String(),
			})
		}
	}
	return out
}

func shifts(rs []shift.Record) []Shift {
	out := make([]Shift, 0, len(rs))
	for _, r := range rs {
		out = append(out, Shift{
			Body:      string(r.Body),
			From:      r.From.String(),
			To:        r.To.String(),
			Shifted:   r.Shifted,
			Delta:     round(r.Delta),
			Direction: r.Direction.String(),
		})
	}
	return out
}

func overlays(items []synastry.Overlay) []Overlay {
	if len(items) == 0 {
		return nil
	}
	out := make([]Overlay, 0, len(items))
	for _, o := range items {
		out = append(out, Overlay{Body: string(o.Body), Longitude: round(o.Longitude), House: o.House})
	}
	return out
}
