// Package motion estimates apparent planetary speed and scans the Moon's
// course ahead of a moment.
package motion

import (
	"fmt"
	"math"
	"time"

	"astrolabe/internal/sky"
)

// Sampler returns a body's geocentric ecliptic longitude at t.
// (*frame.Transform).GeocentricLongitude satisfies it.
type Sampler func(body sky.Body, t time.Time) (float64, error)

// StationBelow is the daily motion, in degrees, under which a body is
// stationary.
const StationBelow = 0.1

var moving = []sky.Body{sky.Mercury, sky.Venus, sky.Mars, sky.Jupiter, sky.Saturn}

// Motion is a body's apparent daily motion. Retrograde and Stationary are
// independent; a slow retrograde body is both.
type Motion struct {
	Body       sky.Body `json:"body"`
	Speed      float64  `json:"speed"`
	Retrograde bool     `json:"retrograde"`
	Stationary bool     `json:"stationary"`
}

// Retrogrades samples the five planets one day either side of t.
func Retrogrades(sample Sampler, t time.Time) ([]Motion, error) {
	out := make([]Motion, 0, len(moving))
	for _, body := range moving {
		m, err := Speed(sample, body, t)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Speed averages the two one-day deltas around t.
func Speed(sample Sampler, body sky.Body, t time.Time) (Motion, error) {
	day := 24 * time.Hour
	var lons [3]float64
	for i, at := range []time.Time{t.Add(-day), t, t.Add(day)} {
		lon, err := sample(body, at)
		if err != nil {
			return Motion{}, fmt.Errorf("sampling %s: %w", body, err)
		}
		lons[i] = lon
	}
	speed := (sky.SignedDelta(lons[0], lons[1]) + sky.SignedDelta(lons[1], lons[2])) / 2
	return Motion{
		Body:       body,
		Speed:      speed,
		Retrograde: speed < 0,
		Stationary: math.Abs(speed) < StationBelow,
	}, nil
}
