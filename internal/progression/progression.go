// Package progression computes secondary progressions: each year of life is
// read from the sky one day after birth.
package progression

import (
	"errors"
	"fmt"
	"time"

	"astrolabe/internal/aspect"
	"astrolabe/internal/chart"
	"astrolabe/internal/house"
	"astrolabe/internal/sky"
)

const secondsPerYear = 365.25 * 86400

var ErrNoNatal = errors.New("natal chart is required")

type Progression struct {
	Age            float64         `json:"age"`
	ProgressedTime time.Time       `json:"progressed_time"`
	Positions      sky.Positions   `json:"positions"`
	Aspects        []aspect.Aspect `json:"aspects"`
	ToNatal        []aspect.Aspect `json:"to_natal"`
	SolarArc       float64         `json:"solar_arc"`
	Ascendant      *float64        `json:"ascendant,omitempty"`
	Houses         []house.House   `json:"houses,omitempty"`
}

// Age is the fractional number of 365.25-day years from birth to target.
func Age(birth, target time.Time) float64 {
	secs := float64(target.Unix()-birth.Unix()) + float64(target.Nanosecond()-birth.Nanosecond())/1e9
	return secs / secondsPerYear
}

// ProgressedTime is birth plus age days.
func ProgressedTime(birth time.Time, age float64) time.Time {
	return birth.Add(time.Duration(age * float64(24*time.Hour)))
}

// Compute progresses natal to target. A target before birth has no
// progression and yields nil without error.
func Compute(b *chart.Builder, natal *chart.Chart, target time.Time) (*Progression, error) {
	if natal == nil {
		return nil, ErrNoNatal
	}
	age := Age(natal.Timestamp, target)
	if age < 0 {
		return nil, nil
	}
	at := ProgressedTime(natal.Timestamp, age)

	progressed, err := b.Build(chart.Request{Time: at, Observer: natal.Observer})
	if err != nil {
		return nil, fmt.Errorf("progressing to %s: %w", at.Format(time.RFC3339), err)
	}

	bodies := progressed.Bodies().Longitudes()
	p := &Progression{
		Age:            age,
		ProgressedTime: at,
		Positions:      progressed.Positions,
		Aspects:        aspect.Find(bodies, b.Orbs.Progression),
		ToNatal:        aspect.Cross(bodies, natal.Bodies().Longitudes(), b.Orbs.Progression),
	}

	natalSun, okNatal := natal.Positions[sky.Sun]
	progSun, okProg := progressed.Positions[sky.Sun]
	if okNatal && okProg {
		p.SolarArc = sky.Normalize(progSun.Longitude - natalSun.Longitude)
		if natal.Angles != nil {
			asc := sky.Normalize(natal.Angles.Ascendant + p.SolarArc)
			p.Ascendant = &asc
			p.Houses = house.WholeSign(asc)
		}
	}
	return p, nil
}
