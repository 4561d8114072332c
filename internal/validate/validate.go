package validate

import (
	"context"
	"fmt"
	"time"

	"astrolabe/internal/store"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeLatitudeRange   = "latitude_out_of_range"
	codeLongitudeRange  = "longitude_out_of_range"
	codeFutureBirth     = "birth_in_future"
	codeMissingLocation = "missing_location"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Profile  string
	FilePath string
}

type Report struct {
	Issues []Issue
}

// HasErrors reports whether any issue is an error.
func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ProfileLister is the read side of store.Store that validation needs.
type ProfileLister interface {
	ListAllProfiles(ctx context.Context) ([]store.Profile, error)
}

func Run(ctx context.Context, lister ProfileLister, now time.Time) (*Report, error) {
	if lister == nil {
		return nil, fmt.Errorf("profile store is required")
	}

	profiles, err := lister.ListAllProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	issues := make([]Issue, 0)
	for i := range profiles {
		issues = append(issues, validateProfile(&profiles[i], now)...)
	}
	return &Report{Issues: issues}, nil
}

func validateProfile(p *store.Profile, now time.Time) []Issue {
	var issues []Issue
	issue := func(severity Severity, code, message string) {
		issues = append(issues, Issue{
			Severity: severity,
			Code:     code,
			Message:  message,
			Profile:  p.Name,
			FilePath: p.SourceFile,
		})
	}

	if p.Location == nil {
		issue(SeverityWarn, codeMissingLocation, "no birth location; houses and angles are unavailable")
	} else {
		if p.Location.Latitude < -90 || p.Location.Latitude > 90 {
			issue(SeverityError, codeLatitudeRange, fmt.Sprintf("latitude %v is outside [-90, 90]", p.Location.Latitude))
		}
		if p.Location.Longitude < -180 || p.Location.Longitude > 180 {
			issue(SeverityError, codeLongitudeRange, fmt.Sprintf("longitude %v is outside [-180, 180]", p.Location.Longitude))
		}
	}

	if p.Born.After(now) {
		issue(SeverityWarn, codeFutureBirth, fmt.Sprintf("birth time %s is in the future", p.Born.Format(time.RFC3339)))
	}

	return issues
}
