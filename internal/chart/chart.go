// Package chart assembles positions, aspects, patterns, dignities and houses
// for one moment into an immutable snapshot.
package chart

import (
	"errors"
	"fmt"
	"time"

	"astrolabe/internal/aspect"
	"astrolabe/internal/cycle"
	"astrolabe/internal/dignity"
	"astrolabe/internal/frame"
	"astrolabe/internal/house"
	"astrolabe/internal/pattern"
	"astrolabe/internal/sky"
)

var ErrMissingTime = errors.New("chart time is required")

// Chart is a computed snapshot. Nothing mutates it after Build returns.
type Chart struct {
	Timestamp  time.Time           `json:"timestamp"`
	Observer   sky.Body            `json:"observer"`
	Zodiac     frame.Zodiac        `json:"zodiac"`
	Location   *sky.Location       `json:"location,omitempty"`
	Positions  sky.Positions       `json:"positions"`
	Aspects    []aspect.Aspect     `json:"aspects"`
	Angles     *house.Angles       `json:"angles,omitempty"`
	Houses     []house.House       `json:"houses,omitempty"`
	Patterns   []pattern.Pattern   `json:"patterns"`
	Dignity    dignity.Summary     `json:"dignity"`
	Receptions []dignity.Reception `json:"receptions"`
}

// Bodies returns the positions that take part in aspects. The lunar nodes
// are placed but never aspected.
func (c *Chart) Bodies() sky.Positions {
	return c.Positions.Without(sky.NorthNode, sky.SouthNode)
}

// HasHouses reports whether house data is available.
func (c *Chart) HasHouses() bool {
	return c != nil && len(c.Houses) == 12
}

// Tables are the reference tables shared by every chart.
type Tables struct {
	Dignity *dignity.Table
	Cycles  *cycle.Table
}

func DefaultTables() Tables {
	return Tables{Dignity: dignity.DefaultTable(), Cycles: cycle.DefaultTable()}
}

// Request describes the chart to build. Observer defaults to Earth. Angles
// and houses are computed only for Earth charts with a location.
type Request struct {
	Time     time.Time
	Observer sky.Body
	Location *sky.Location
}

type Builder struct {
	Transform *frame.Transform
	Tables    Tables
	Orbs      aspect.Set
}

// NewBuilder fills missing tables with the defaults.
func NewBuilder(tr *frame.Transform, tables Tables, orbs aspect.Set) *Builder {
	if tables.Dignity == nil {
		tables.Dignity = dignity.DefaultTable()
	}
	if tables.Cycles == nil {
		tables.Cycles = cycle.DefaultTable()
	}
	if orbs.General.Orbs == nil {
		orbs.General = aspect.General()
	}
	if orbs.Transit.Orbs == nil {
		orbs.Transit = aspect.Transit()
	}
	if orbs.Progression.Orbs == nil {
		orbs.Progression = aspect.Progression()
	}
	return &Builder{Transform: tr, Tables: tables, Orbs: orbs}
}

func (b *Builder) Build(req Request) (*Chart, error) {
	if req.Time.IsZero() {
		return nil, ErrMissingTime
	}
	observer := req.Observer
	if observer == "" {
		observer = sky.Earth
	}

	positions, err := b.Transform.Positions(observer, req.Time)
	if err != nil {
		return nil, fmt.Errorf("computing positions: %w", err)
	}
	if observer == sky.Earth {
		for body, pos := range b.Transform.Nodes(req.Time) {
			positions[body] = pos
		}
	}

	c := &Chart{
		Timestamp: req.Time.UTC(),
		Observer:  observer,
		Zodiac:    b.Transform.Zodiac(),
		Positions: positions,
	}
	c.Aspects = aspect.Find(c.Bodies().Longitudes(), b.Orbs.General)
	c.Patterns = pattern.Detect(c.Aspects)
	c.Dignity = b.Tables.Dignity.Evaluate(positions)
	c.Receptions = b.Tables.Dignity.MutualReceptions(positions)

	if req.Location != nil && observer == sky.Earth {
		loc := *req.Location
		c.Location = &loc
		angles, err := house.NewCalculator(b.Transform).Angles(req.Time, loc)
		if err != nil {
			return nil, fmt.Errorf("computing angles: %w", err)
		}
		c.Angles = &angles
		c.Houses = house.WholeSign(angles.Ascendant)
	}
	return c, nil
}
