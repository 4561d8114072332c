package chart

import (
	"fmt"
	"time"

	"astrolabe/internal/aspect"
	"astrolabe/internal/cycle"
	"astrolabe/internal/motion"
	"astrolabe/internal/shift"
)

// Transit is the sky at a later moment read against a natal chart.
type Transit struct {
	Chart     *Chart          `json:"chart"`
	ToNatal   []aspect.Aspect `json:"to_natal"`
	Shifts    []shift.Record  `json:"shifts"`
	Ingresses []shift.Record  `json:"ingresses"`
}

// Transits builds the chart for t from the natal observer and location and
// relates it to natal with the transit orbs.
func (b *Builder) Transits(natal *Chart, t time.Time) (*Transit, error) {
	current, err := b.Build(Request{Time: t, Observer: natal.Observer, Location: natal.Location})
	if err != nil {
		return nil, err
	}
	shifts := shift.Analyze(natal.Positions, current.Positions)
	return &Transit{
		Chart:     current,
		ToNatal:   aspect.Cross(current.Bodies().Longitudes(), natal.Bodies().Longitudes(), b.Orbs.Transit),
		Shifts:    shifts,
		Ingresses: shift.Ingresses(shifts),
	}, nil
}

// Report is the state of the sky at one moment beyond the chart itself.
type Report struct {
	Chart       *Chart          `json:"chart"`
	Retrogrades []motion.Motion `json:"retrogrades"`
	Void        motion.Void     `json:"void_of_course"`
	Cycle       cycle.Phase     `json:"solar_cycle"`
}

func (b *Builder) Report(req Request) (*Report, error) {
	c, err := b.Build(req)
	if err != nil {
		return nil, err
	}
	sample := b.Transform.GeocentricLongitude
	retro, err := motion.Retrogrades(sample, req.Time)
	if err != nil {
		return nil, fmt.Errorf("computing retrogrades: %w", err)
	}
	void, err := motion.VoidOfCourse(sample, req.Time)
	if err != nil {
		return nil, fmt.Errorf("computing void of course: %w", err)
	}
	return &Report{
		Chart:       c,
		Retrogrades: retro,
		Void:        void,
		Cycle:       b.Tables.Cycles.PhaseAt(req.Time),
	}, nil
}
