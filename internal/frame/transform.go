// Package frame turns raw ephemeris vectors into observer-relative ecliptic
// positions.
package frame

import (
	"errors"
	"fmt"
	"time"

	"astrolabe/internal/sky"
)

var (
	ErrSameBody    = errors.New("observer and target are the same body")
	ErrNotObserver = errors.New("body cannot be used as an observer")
	ErrNotVisible  = errors.New("target is not visible from observer")
	ErrNilProvider = errors.New("ephemeris provider is required")
)

var planetary = []sky.Body{sky.Sun, sky.Moon, sky.Mercury, sky.Venus, sky.Earth, sky.Mars, sky.Jupiter, sky.Saturn}

var (
	earthTargets = []sky.Body{sky.Sun, sky.Moon, sky.Mercury, sky.Venus, sky.Mars, sky.Jupiter, sky.Saturn}
	sunTargets   = []sky.Body{sky.Mercury, sky.Venus, sky.Earth, sky.Mars, sky.Jupiter, sky.Saturn, sky.Moon}
)

// IsObserver reports whether positions can be computed from body. The lunar
// nodes are points, not bodies, and never observe.
func IsObserver(body sky.Body) bool {
	for _, item := range planetary {
		if item == body {
			return true
		}
	}
	return false
}

// Targets returns the bodies visible from observer, in the order charts list
// them. Unknown observers see nothing.
func Targets(observer sky.Body) []sky.Body {
	switch observer {
	case sky.Earth:
		return append([]sky.Body(nil), earthTargets...)
	case sky.Sun:
		return append([]sky.Body(nil), sunTargets...)
	}
	if !IsObserver(observer) {
		return nil
	}
	targets := make([]sky.Body, 0, len(planetary)-1)
	for _, body := range planetary {
		if body != observer {
			targets = append(targets, body)
		}
	}
	return targets
}

func isTarget(observer, target sky.Body) bool {
	for _, body := range Targets(observer) {
		if body == target {
			return true
		}
	}
	return false
}

type Transform struct {
	provider Provider
	zodiac   Zodiac
}

func New(provider Provider, zodiac Zodiac) *Transform {
	return &Transform{provider: provider, zodiac: zodiac}
}

func (tr *Transform) Zodiac() Zodiac {
	return tr.zodiac
}

func (tr *Transform) Provider() Provider {
	return tr.provider
}

// WithZodiac returns a transform sharing the provider but using z.
func (tr *Transform) WithZodiac(z Zodiac) *Transform {
	return &Transform{provider: tr.provider, zodiac: z}
}

// Longitude returns target's ecliptic longitude as seen from observer, in
// [0,360), at full precision.
func (tr *Transform) Longitude(observer, target sky.Body, t time.Time) (float64, error) {
	if tr == nil || tr.provider == nil {
		return 0, ErrNilProvider
	}
	if observer == target {
		return 0, ErrSameBody
	}
	if !IsObserver(observer) {
		return 0, fmt.Errorf("%s: %w", observer, ErrNotObserver)
	}
	if !isTarget(observer, target) {
		return 0, fmt.Errorf("%s from %s: %w", target, observer, ErrNotVisible)
	}

	from, err := tr.heliocentric(observer, t)
	if err != nil {
		return 0, err
	}
	to, err := tr.heliocentric(target, t)
	if err != nil {
		return 0, err
	}

	lon := sky.Normalize(tr.provider.EclipticLongitude(to.Sub(from)))
	if tr.zodiac == Sidereal {
		lon = sky.Normalize(lon - Ayanamsa(t))
	}
	return lon, nil
}

// heliocentric resolves a body's Sun-relative vector. The provider reports the
// Moon relative to the Earth, so it is composed from the two.
func (tr *Transform) heliocentric(body sky.Body, t time.Time) (sky.Vector, error) {
	switch body {
	case sky.Sun:
		return sky.Vector{}, nil
	case sky.Moon:
		earth, err := tr.provider.Heliocentric(sky.Earth, t)
		if err != nil {
			return sky.Vector{}, fmt.Errorf("heliocentric %s: %w", sky.Earth, err)
		}
		moon, err := tr.provider.Geocentric(sky.Moon, t)
		if err != nil {
			return sky.Vector{}, fmt.Errorf("geocentric %s: %w", sky.Moon, err)
		}
		return earth.Add(moon), nil
	default:
		v, err := tr.provider.Heliocentric(body, t)
		if err != nil {
			return sky.Vector{}, fmt.Errorf("heliocentric %s: %w", body, err)
		}
		return v, nil
	}
}

func (tr *Transform) Position(observer, target sky.Body, t time.Time) (sky.Position, error) {
	lon, err := tr.Longitude(observer, target, t)
	if err != nil {
		return sky.Position{}, err
	}
	return sky.LonToSign(lon), nil
}

// Positions computes every target visible from observer.
func (tr *Transform) Positions(observer sky.Body, t time.Time) (sky.Positions, error) {
	if !IsObserver(observer) {
		return nil, fmt.Errorf("%s: %w", observer, ErrNotObserver)
	}
	targets := Targets(observer)
	positions := make(sky.Positions, len(targets))
	for _, target := range targets {
		pos, err := tr.Position(observer, target, t)
		if err != nil {
			return nil, err
		}
		positions[target] = pos
	}
	return positions, nil
}

// GeocentricLongitude is the Earth-observer longitude; its signature matches
// the samplers the motion analyzer consumes.
func (tr *Transform) GeocentricLongitude(body sky.Body, t time.Time) (float64, error) {
	return tr.Longitude(sky.Earth, body, t)
}

// Nodes returns the mean lunar nodes. They are geocentric points, so they
// only make sense on Earth-observer charts.
func (tr *Transform) Nodes(t time.Time) sky.Positions {
	north := MeanNode(t)
	if tr != nil && tr.zodiac == Sidereal {
		north = sky.Normalize(north - Ayanamsa(t))
	}
	return sky.Positions{
		sky.NorthNode: sky.LonToSign(north),
		sky.SouthNode: sky.LonToSign(north + 180),
	}
}

// MeanNode is the tropical longitude of the mean ascending lunar node.
func MeanNode(t time.Time) float64 {
	c := float64(t.Unix()-j2000.Unix()) / secondsPerYear / 100
	return sky.Normalize(125.04452 - 1934.136261*c + 0.0020708*c*c + c*c*c/450000)
}
