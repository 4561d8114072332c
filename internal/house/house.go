// Package house computes the chart angles and whole-sign houses.
package house

import (
	"math"
	"time"

	"astrolabe/internal/frame"
	"astrolabe/internal/sky"
)

// Obliquity is the fixed mean obliquity of the ecliptic, in degrees.
const Obliquity = 23.4393

const rad = math.Pi / 180

type Angles struct {
	Ascendant  float64 `json:"ascendant"`
	Midheaven  float64 `json:"midheaven"`
	Descendant float64 `json:"descendant"`
	ImumCoeli  float64 `json:"imum_coeli"`
}

// House spans [Start, End) in ecliptic longitude. Whole-sign houses always
// cover a full sign.
type House struct {
	Number int      `json:"number"`
	Sign   sky.Sign `json:"sign"`
	Start  float64  `json:"start"`
	End    float64  `json:"end"`
}

// LocalSiderealDegrees converts Greenwich sidereal hours to local sidereal
// time in degrees for an east-positive longitude.
func LocalSiderealDegrees(gmstHours, longitude float64) float64 {
	return sky.Normalize(gmstHours*15 + longitude)
}

func ComputeAngles(lst, latitude float64) Angles {
	l := lst * rad
	e := Obliquity * rad
	phi := latitude * rad

	asc := sky.Normalize(math.Atan2(math.Cos(l), -(math.Sin(l)*math.Cos(e)+math.Tan(phi)*math.Sin(e))) / rad)
	mc := sky.Normalize(math.Atan2(math.Sin(l), math.Cos(l)*math.Cos(e)) / rad)
	return Angles{
		Ascendant:  asc,
		Midheaven:  mc,
		Descendant: sky.Normalize(asc + 180),
		ImumCoeli:  sky.Normalize(mc + 180),
	}
}

// WholeSign makes the rising sign the first house and gives each following
// sign the next house.
func WholeSign(ascendant float64) []House {
	first := sky.LonToSign(ascendant).SignIndex
	houses := make([]House, 0, 12)
	for n := 1; n <= 12; n++ {
		index := (first + n - 1) % 12
		start := float64(index * 30)
		houses = append(houses, House{
			Number: n,
			Sign:   sky.SignAt(index),
			Start:  start,
			End:    start + 30,
		})
	}
	return houses
}

// HouseFor returns the number of the house containing longitude, or 0 when
// no house does.
func HouseFor(longitude float64, houses []House) int {
	lon := sky.Normalize(longitude)
	for _, h := range houses {
		end := h.Start + 30
		if end > 360 {
			if lon >= h.Start || lon < end-360 {
				return h.Number
			}
			continue
		}
		if lon >= h.Start && lon < end {
			return h.Number
		}
	}
	return 0
}

// Calculator derives angles from the transform's sidereal clock. Sidereal
// charts have the ayanamsa removed from every angle.
type Calculator struct {
	transform *frame.Transform
}

func NewCalculator(tr *frame.Transform) *Calculator {
	return &Calculator{transform: tr}
}

func (c *Calculator) Angles(t time.Time, loc sky.Location) (Angles, error) {
	if c == nil || c.transform == nil || c.transform.Provider() == nil {
		return Angles{}, frame.ErrNilProvider
	}
	lst := LocalSiderealDegrees(c.transform.Provider().SiderealTime(t), loc.Longitude)
	angles := ComputeAngles(lst, loc.Latitude)
	if c.transform.Zodiac() == frame.Sidereal {
		shift := frame.Ayanamsa(t)
		angles.Ascendant = sky.Normalize(angles.Ascendant - shift)
		angles.Midheaven = sky.Normalize(angles.Midheaven - shift)
		angles.Descendant = sky.Normalize(angles.Descendant - shift)
		angles.ImumCoeli = sky.Normalize(angles.ImumCoeli - shift)
	}
	return angles, nil
}
