// Package ephemeris serves planetary vectors from a table of samples,
// interpolating linearly between neighbours.
package ephemeris

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"astrolabe/internal/frame"
	"astrolabe/internal/sky"
)

// Obliquity is the J2000 mean obliquity used to rotate equatorial vectors
// into the ecliptic.
const Obliquity = 23.4392911

var (
	ErrNoSamples   = errors.New("ephemeris has no samples")
	ErrOutOfRange  = errors.New("time outside ephemeris range")
	ErrMissingBody = errors.New("body missing from ephemeris sample")
)

const (
	FrameEquatorial = "equatorial"
	FrameEcliptic   = "ecliptic"
)

// Sample is every body's position at one instant. Heliocentric is keyed by
// lowercase body name; Moon is geocentric.
type Sample struct {
	Time         time.Time             `yaml:"time"`
	Heliocentric map[string]sky.Vector `yaml:"heliocentric"`
	Moon         *sky.Vector           `yaml:"moon,omitempty"`
}

type File struct {
	Frame   string   `yaml:"frame"`
	Samples []Sample `yaml:"samples"`
}

type point struct {
	at    time.Time
	helio map[sky.Body]sky.Vector
	moon  *sky.Vector
}

// Table is a frame.Provider backed by samples.
type Table struct {
	ecliptic bool
	points   []point
}

var _ frame.Provider = (*Table)(nil)

// Load reads a sample file from disk.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading ephemeris: %w", err)
	}
	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading ephemeris %s: %w", path, err)
	}
	return table, nil
}

func Parse(data []byte) (*Table, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return New(f)
}

// New validates f. Samples may be given in any order but not at duplicate
// times.
func New(f File) (*Table, error) {
	if len(f.Samples) == 0 {
		return nil, ErrNoSamples
	}
	t := &Table{}
	switch strings.ToLower(strings.TrimSpace(f.Frame)) {
	case "", FrameEquatorial:
	case FrameEcliptic:
		t.ecliptic = true
	default:
		return nil, fmt.Errorf("unknown frame %q", f.Frame)
	}

	for i, s := range f.Samples {
		if s.Time.IsZero() {
			return nil, fmt.Errorf("sample %d: time is required", i)
		}
		p := point{at: s.Time.UTC(), helio: make(map[sky.Body]sky.Vector, len(s.Heliocentric)), moon: s.Moon}
		for name, v := range s.Heliocentric {
			body, ok := sky.ParseBody(name)
			if !ok {
				return nil, fmt.Errorf("sample %d: unknown body %q", i, name)
			}
			if body == sky.Sun || body == sky.Moon {
				return nil, fmt.Errorf("sample %d: %s has no heliocentric entry", i, body)
			}
			p.helio[body] = v
		}
		t.points = append(t.points, p)
	}
	sort.Slice(t.points, func(i, j int) bool {
		return t.points[i].at.Before(t.points[j].at)
	})
	for i := 1; i < len(t.points); i++ {
		if t.points[i].at.Equal(t.points[i-1].at) {
			return nil, fmt.Errorf("duplicate sample at %s", t.points[i].at.Format(time.RFC3339))
		}
	}
	return t, nil
}

// Range reports the first and last sample times.
func (t *Table) Range() (time.Time, time.Time) {
	return t.points[0].at, t.points[len(t.points)-1].at
}

// bracket returns the samples around at and the fraction of the way from the
// first to the second.
func (t *Table) bracket(at time.Time) (point, point, float64, error) {
	first, last := t.Range()
	if at.Before(first) || at.After(last) {
		return point{}, point{}, 0, fmt.Errorf("%s: %w", at.UTC().Format(time.RFC3339), ErrOutOfRange)
	}
	i := sort.Search(len(t.points), func(i int) bool {
		return !t.points[i].at.Before(at)
	})
	if t.points[i].at.Equal(at) {
		return t.points[i], t.points[i], 0, nil
	}
	lo, hi := t.points[i-1], t.points[i]
	frac := at.Sub(lo.at).Seconds() / hi.at.Sub(lo.at).Seconds()
	return lo, hi, frac, nil
}

func lerp(a, b sky.Vector, frac float64) sky.Vector {
	return a.Add(b.Sub(a).Scale(frac))
}

func (t *Table) Heliocentric(body sky.Body, at time.Time) (sky.Vector, error) {
	if body == sky.Sun {
		return sky.Vector{}, nil
	}
	lo, hi, frac, err := t.bracket(at)
	if err != nil {
		return sky.Vector{}, err
	}
	a, okA := lo.helio[body]
	b, okB := hi.helio[body]
	if !okA || !okB {
		return sky.Vector{}, fmt.Errorf("%s: %w", body, ErrMissingBody)
	}
	return lerp(a, b, frac), nil
}

func (t *Table) Geocentric(body sky.Body, at time.Time) (sky.Vector, error) {
	if body == sky.Moon {
		lo, hi, frac, err := t.bracket(at)
		if err != nil {
			return sky.Vector{}, err
		}
		if lo.moon == nil || hi.moon == nil {
			return sky.Vector{}, fmt.Errorf("%s: %w", body, ErrMissingBody)
		}
		return lerp(*lo.moon, *hi.moon, frac), nil
	}
	earth, err := t.Heliocentric(sky.Earth, at)
	if err != nil {
		return sky.Vector{}, err
	}
	v, err := t.Heliocentric(body, at)
	if err != nil {
		return sky.Vector{}, err
	}
	return v.Sub(earth), nil
}

func (t *Table) SiderealTime(at time.Time) float64 {
	return GreenwichSiderealHours(at)
}

func (t *Table) EclipticLongitude(v sky.Vector) float64 {
	if t.ecliptic {
		return sky.Normalize(math.Atan2(v.Y, v.X) * 180 / math.Pi)
	}
	return EclipticLongitude(v)
}

var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// GreenwichSiderealHours is mean sidereal time at Greenwich, in [0,24).
func GreenwichSiderealHours(at time.Time) float64 {
	days := (float64(at.Unix()-j2000.Unix()) + float64(at.Nanosecond())/1e9) / 86400
	gmst := math.Mod(18.697374558+24.06570982441908*days, 24)
	if gmst < 0 {
		gmst += 24
	}
	return gmst
}

// EclipticLongitude rotates an equatorial J2000 vector about the x axis into
// the ecliptic and returns its longitude in [0,360).
func EclipticLongitude(v sky.Vector) float64 {
	e := Obliquity * math.Pi / 180
	y := v.Y*math.Cos(e) + v.Z*math.Sin(e)
	return sky.Normalize(math.Atan2(y, v.X) * 180 / math.Pi)
}
