// Package frametest provides a deterministic ephemeris provider for tests.
package frametest

import (
	"fmt"
	"math"
	"time"

	"astrolabe/internal/sky"
)

// farRadius puts planets far enough away that their geocentric longitude
// matches the configured heliocentric one to within 1e-4 degrees.
const farRadius = 1e6

// Fake places every body on a circle in the ecliptic plane. Sun is the
// geocentric longitude of the Sun; Earth sits opposite it at 1 AU. Moon is
// geocentric. Rates move each longitude linearly in degrees per day from
// Epoch.
type Fake struct {
	Epoch      time.Time
	Longitudes map[sky.Body]float64
	Rates      map[sky.Body]float64
	GMST       float64
	Missing    map[sky.Body]bool
}

func New(epoch time.Time, longitudes map[sky.Body]float64) *Fake {
	return &Fake{Epoch: epoch, Longitudes: longitudes, Rates: map[sky.Body]float64{}}
}

func (f *Fake) lon(body sky.Body, t time.Time) float64 {
	days := t.Sub(f.Epoch).Hours() / 24
	return f.Longitudes[body] + f.Rates[body]*days
}

func unit(lonDeg, radius float64) sky.Vector {
	rad := lonDeg * math.Pi / 180
	return sky.Vector{X: radius * math.Cos(rad), Y: radius * math.Sin(rad)}
}

func (f *Fake) Heliocentric(body sky.Body, t time.Time) (sky.Vector, error) {
	if f.Missing[body] {
		return sky.Vector{}, fmt.Errorf("no data for %s", body)
	}
	switch body {
	case sky.Sun:
		return sky.Vector{}, nil
	case sky.Earth:
		return unit(f.lon(sky.Sun, t)+180, 1), nil
	case sky.Moon:
		return sky.Vector{}, fmt.Errorf("moon is geocentric only")
	default:
		return unit(f.lon(body, t), farRadius), nil
	}
}

func (f *Fake) Geocentric(body sky.Body, t time.Time) (sky.Vector, error) {
	if f.Missing[body] {
		return sky.Vector{}, fmt.Errorf("no data for %s", body)
	}
	if body != sky.Moon {
		earth, _ := f.Heliocentric(sky.Earth, t)
		helio, err := f.Heliocentric(body, t)
		if err != nil {
			return sky.Vector{}, err
		}
		return helio.Sub(earth), nil
	}
	return unit(f.lon(sky.Moon, t), 0.00257), nil
}

func (f *Fake) SiderealTime(t time.Time) float64 {
	return f.GMST
}

func (f *Fake) EclipticLongitude(v sky.Vector) float64 {
	return sky.Normalize(math.Atan2(v.Y, v.X) * 180 / math.Pi)
}
