// Package service resolves stored profiles into charts. The CLI and the MCP
// server share it.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"astrolabe/internal/chart"
	"astrolabe/internal/cycle"
	"astrolabe/internal/progression"
	"astrolabe/internal/sky"
	"astrolabe/internal/store"
	"astrolabe/internal/synastry"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrBeforeBirth     = errors.New("target time precedes birth")
)

// Profiles looks up a single stored profile. store.Store satisfies it.
type Profiles interface {
	GetProfile(ctx context.Context, name string) (*store.Profile, error)
}

type Service struct {
	profiles Profiles
	builder  *chart.Builder
	location *sky.Location
}

// New wires a service. location is the observer used for sky reports when a
// call gives none; it may be nil.
func New(profiles Profiles, builder *chart.Builder, location *sky.Location) *Service {
	return &Service{profiles: profiles, builder: builder, location: location}
}

func (s *Service) Builder() *chart.Builder {
	return s.builder
}

func (s *Service) Profile(ctx context.Context, name string) (*store.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading profile %q: %w", name, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return p, nil
}

func (s *Service) Natal(ctx context.Context, name string) (*store.Profile, *chart.Chart, error) {
	p, err := s.Profile(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	c, err := s.builder.Build(chart.Request{Time: p.Born, Observer: sky.Earth, Location: p.Location})
	if err != nil {
		return nil, nil, fmt.Errorf("natal chart for %s: %w", p.Name, err)
	}
	return p, c, nil
}

func (s *Service) Transits(ctx context.Context, name string, at time.Time) (*store.Profile, *chart.Transit, error) {
	p, natal, err := s.Natal(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	tr, err := s.builder.Transits(natal, at)
	if err != nil {
		return nil, nil, fmt.Errorf("transits for %s: %w", p.Name, err)
	}
	return p, tr, nil
}

func (s *Service) Progress(ctx context.Context, name string, at time.Time) (*store.Profile, *progression.Progression, error) {
	p, natal, err := s.Natal(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	prog, err := progression.Compute(s.builder, natal, at)
	if err != nil {
		return nil, nil, fmt.Errorf("progression for %s: %w", p.Name, err)
	}
	if prog == nil {
		return nil, nil, fmt.Errorf("%w: %s was born %s", ErrBeforeBirth, p.Name, p.Born.Format(time.RFC3339))
	}
	return p, prog, nil
}

// Synastry compares two profiles with the general orbs.
func (s *Service) Synastry(ctx context.Context, first, second string) (*synastry.Synastry, error) {
	_, a, err := s.Natal(ctx, first)
	if err != nil {
		return nil, err
	}
	_, b, err := s.Natal(ctx, second)
	if err != nil {
		return nil, err
	}
	return synastry.Compute(a, b, s.builder.Orbs.General)
}

// Sky reports the geocentric sky at a moment. A nil location falls back to
// the configured default.
func (s *Service) Sky(at time.Time, location *sky.Location) (*chart.Report, error) {
	if location == nil {
		location = s.location
	}
	return s.builder.Report(chart.Request{Time: at, Observer: sky.Earth, Location: location})
}

func (s *Service) Cycle(at time.Time) cycle.Phase {
	return s.builder.Tables.Cycles.PhaseAt(at)
}
