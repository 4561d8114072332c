package sky

import "math"

// Position is an ecliptic longitude split into sign and degree. Values keep
// full precision; Round is for presentation only.
type Position struct {
	Longitude float64 `json:"longitude"`
	Sign      Sign    `json:"sign"`
	SignIndex int     `json:"sign_index"`
	Degree    float64 `json:"degree"`
}

// LonToSign normalizes a longitude into [0,360) and splits it into sign and
// degree within the sign.
func LonToSign(longitude float64) Position {
	lon := Normalize(longitude)
	index := int(math.Floor(lon / 30))
	if index > 11 {
		index = 11
	}
	return Position{
		Longitude: lon,
		Sign:      Sign(index),
		SignIndex: index,
		Degree:    lon - float64(index)*30,
	}
}

// Positions maps bodies to their positions. Iterate with Bodies for roster
// order.
type Positions map[Body]Position

func (p Positions) Bodies() []Body {
	bodies := make([]Body, 0, len(p))
	for body := range p {
		bodies = append(bodies, body)
	}
	SortBodies(bodies)
	return bodies
}

func (p Positions) Longitudes() map[Body]float64 {
	out := make(map[Body]float64, len(p))
	for body, pos := range p {
		out[body] = pos.Longitude
	}
	return out
}

// Without returns a copy of p minus the given bodies.
func (p Positions) Without(bodies ...Body) Positions {
	out := make(Positions, len(p))
	for body, pos := range p {
		out[body] = pos
	}
	for _, body := range bodies {
		delete(out, body)
	}
	return out
}

// Normalize wraps an angle into [0,360).
func Normalize(deg float64) float64 {
	out := math.Mod(deg, 360)
	if out < 0 {
		out += 360
	}
	if out >= 360 {
		out = 0
	}
	return out
}

// SignedDelta returns to − from normalized into (−180,180].
func SignedDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// Separation is the circular distance between two longitudes, in [0,180].
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	return math.Min(d, 360-d)
}

// Round rounds to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Vector is a rectangular position in astronomical units.
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vector) Scale(f float64) Vector { return Vector{v.X * f, v.Y * f, v.Z * f} }

// Location is a geographic position in degrees, east longitude positive.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}
