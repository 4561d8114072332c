package frame

import (
	"time"

	"astrolabe/internal/sky"
)

// Provider supplies raw ephemeris data. Vectors are in astronomical units in
// whatever rectangular frame EclipticLongitude knows how to project.
type Provider interface {
	// Heliocentric returns the body's position relative to the Sun.
	// For the Moon, implementations may return an error; the transform never
	// asks for it and composes the Moon from Earth + Geocentric(Moon).
	Heliocentric(body sky.Body, t time.Time) (sky.Vector, error)

	// Geocentric returns the body's position relative to the Earth.
	Geocentric(body sky.Body, t time.Time) (sky.Vector, error)

	// SiderealTime returns Greenwich sidereal time in hours.
	SiderealTime(t time.Time) float64

	// EclipticLongitude projects a vector onto the ecliptic plane.
	EclipticLongitude(v sky.Vector) float64
}
