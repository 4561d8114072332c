package validate

import (
	"context"
	"errors"
	"testing"
	"time"

	"astrolabe/internal/sky"
	"astrolabe/internal/store"
)

type mockLister struct {
	profiles []store.Profile
	err      error
}

func (m *mockLister) ListAllProfiles(ctx context.Context) ([]store.Profile, error) {
	return m.profiles, m.err
}

var now = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		profile store.Profile
		codes   []string
	}{
		{
			name:    "clean profile",
			profile: store.Profile{Name: "Ada", Born: time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC), Location: &sky.Location{Latitude: 51.5, Longitude: -0.1}},
		},
		{
			name:    "edges are valid",
			profile: store.Profile{Name: "Pole", Born: now, Location: &sky.Location{Latitude: -90, Longitude: 180}},
		},
		{
			name:    "latitude out of range",
			profile: store.Profile{Name: "North", Born: now.AddDate(-1, 0, 0), Location: &sky.Location{Latitude: 90.5, Longitude: 0}},
			codes:   []string{codeLatitudeRange},
		},
		{
			name:    "both coordinates out of range",
			profile: store.Profile{Name: "Nowhere", Born: now.AddDate(-1, 0, 0), Location: &sky.Location{Latitude: -91, Longitude: 200}},
			codes:   []string{codeLatitudeRange, codeLongitudeRange},
		},
		{
			name:    "missing location",
			profile: store.Profile{Name: "Unknown", Born: now.AddDate(-1, 0, 0)},
			codes:   []string{codeMissingLocation},
		},
		{
			name:    "future birth",
			profile: store.Profile{Name: "Later", Born: now.Add(time.Hour), Location: &sky.Location{}},
			codes:   []string{codeFutureBirth},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Run(context.Background(), &mockLister{profiles: []store.Profile{tt.profile}}, now)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(report.Issues) != len(tt.codes) {
				t.Fatalf("expected %d issues, got %+v", len(tt.codes), report.Issues)
			}
			for i, code := range tt.codes {
				if report.Issues[i].Code != code {
					t.Fatalf("expected code %s, got %s", code, report.Issues[i].Code)
				}
				if report.Issues[i].Profile != tt.profile.Name {
					t.Fatalf("expected profile %s, got %s", tt.profile.Name, report.Issues[i].Profile)
				}
			}
		})
	}
}

func TestSeverities(t *testing.T) {
	lister := &mockLister{profiles: []store.Profile{
		{Name: "Later", Born: now.AddDate(1, 0, 0)},
	}}
	report, err := Run(context.Background(), lister, now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.HasErrors() {
		t.Fatalf("expected warnings only, got %+v", report.Issues)
	}

	lister.profiles = append(lister.profiles, store.Profile{Name: "Bad", Born: now, Location: &sky.Location{Latitude: 100}})
	report, err = Run(context.Background(), lister, now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !report.HasErrors() {
		t.Fatalf("expected an error issue")
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := Run(context.Background(), nil, now); err == nil {
		t.Fatalf("expected error for nil lister")
	}
	if _, err := Run(context.Background(), &mockLister{err: errors.New("boom")}, now); err == nil {
		t.Fatalf("expected list error to propagate")
	}
}
