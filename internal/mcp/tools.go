package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"astrolabe/internal/config"
	"astrolabe/internal/report"
	"astrolabe/internal/sky"
	"astrolabe/internal/store"
)

type ProfileInput struct {
	Profile string `json:"profile" jsonschema:"profile name"`
}

type ProfileAtInput struct {
	Profile string `json:"profile" jsonschema:"profile name"`
	At      string `json:"at,omitempty" jsonschema:"RFC 3339 time, defaults to now"`
}

type SynastryInput struct {
	First  string `json:"first" jsonschema:"first profile name"`
	Second string `json:"second" jsonschema:"second profile name"`
}

type MomentInput struct {
	At string `json:"at,omitempty" jsonschema:"RFC 3339 time, defaults to now"`
}

type SkyInput struct {
	At        string   `json:"at,omitempty" jsonschema:"RFC 3339 time, defaults to now"`
	Latitude  *float64 `json:"latitude,omitempty" jsonschema:"observer latitude in degrees, north positive"`
	Longitude *float64 `json:"longitude,omitempty" jsonschema:"observer longitude in degrees, east positive"`
}

type ListProfilesInput struct {
	Tag string `json:"tag,omitempty" jsonschema:"tag filter"`
}

type SearchProfilesInput struct {
	Query string `json:"query" jsonschema:"search terms"`
	Tag   string `json:"tag,omitempty" jsonschema:"restrict to profiles with this tag"`
}

type TransitOutput struct {
	Profile string         `json:"profile"`
	Transit report.Transit `json:"transit"`
}

type ProgressionOutput struct {
	Profile     string             `json:"profile"`
	Progression report.Progression `json:"progression"`
}

type ProfileSummaryOutput struct {
	Name string   `json:"name"`
	Born string   `json:"born"`
	Tags []string `json:"tags"`
}

type ListProfilesOutput struct {
	Profiles []ProfileSummaryOutput `json:"profiles"`
}

type SearchResultOutput struct {
	Name    string   `json:"name"`
	Tags    []string `json:"tags"`
	Score   float64  `json:"score"`
	Snippet string   `json:"snippet"`
}

type SearchProfilesOutput struct {
	Results []SearchResultOutput `json:"results"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "natal_chart",
		Description: "Compute the natal chart of a stored profile",
	}, s.handleNatalChart)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "transits",
		Description: "Compare the sky at a moment with a profile's natal chart",
	}, s.handleTransits)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "progression",
		Description: "Secondary progression of a profile to a target time",
	}, s.handleProgression)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "synastry",
		Description: "Compare the natal charts of two profiles",
	}, s.handleSynastry)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "solar_cycle",
		Description: "Locate a moment within the solar magnetic cycle",
	}, s.handleSolarCycle)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "sky_now",
		Description: "Positions, retrogrades, void-of-course Moon and solar cycle at a moment",
	}, s.handleSkyNow)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_profiles",
		Description: "List stored profiles with an optional tag filter",
	}, s.handleListProfiles)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_profiles",
		Description: "Search profiles by name, tags, and notes",
	}, s.handleSearchProfiles)
}

func (s *Server) handleNatalChart(ctx context.Context, req *sdk.CallToolRequest, input ProfileInput) (*sdk.CallToolResult, report.Chart, error) {
	if strings.TrimSpace(input.Profile) == "" {
		return nil, report.Chart{}, fmt.Errorf("profile is required")
	}
	p, c, err := s.svc.Natal(ctx, input.Profile)
	if err != nil {
		return nil, report.Chart{}, err
	}
	out := report.FromChart(c)
	out.Name = p.Name
	return nil, out, nil
}

func (s *Server) handleTransits(ctx context.Context, req *sdk.CallToolRequest, input ProfileAtInput) (*sdk.CallToolResult, TransitOutput, error) {
	if strings.TrimSpace(input.Profile) == "" {
		return nil, TransitOutput{}, fmt.Errorf("profile is required")
	}
	at, err := s.parseAt(input.At)
	if err != nil {
		return nil, TransitOutput{}, err
	}
	p, tr, err := s.svc.Transits(ctx, input.Profile, at)
	if err != nil {
		return nil, TransitOutput{}, err
	}
	return nil, TransitOutput{Profile: p.Name, Transit: report.FromTransit(tr)}, nil
}

func (s *Server) handleProgression(ctx context.Context, req *sdk.CallToolRequest, input ProfileAtInput) (*sdk.CallToolResult, ProgressionOutput, error) {
	if strings.TrimSpace(input.Profile) == "" {
		return nil, ProgressionOutput{}, fmt.Errorf("profile is required")
	}
	at, err := s.parseAt(input.At)
	if err != nil {
		return nil, ProgressionOutput{}, err
	}
	p, prog, err := s.svc.Progress(ctx, input.Profile, at)
	if err != nil {
		return nil, ProgressionOutput{}, err
	}
	return nil, ProgressionOutput{Profile: p.Name, Progression: report.FromProgression(prog)}, nil
}

func (s *Server) handleSynastry(ctx context.Context, req *sdk.CallToolRequest, input SynastryInput) (*sdk.CallToolResult, report.Synastry, error) {
	if strings.TrimSpace(input.First) == "" || strings.TrimSpace(input.Second) == "" {
		return nil, report.Synastry{}, fmt.Errorf("first and second are required")
	}
	syn, err := s.svc.Synastry(ctx, input.First, input.Second)
	if err != nil {
		return nil, report.Synastry{}, err
	}
	out := report.FromSynastry(syn)
	out.First = input.First
	out.Second = input.Second
	return nil, out, nil
}

func (s *Server) handleSolarCycle(ctx context.Context, req *sdk.CallToolRequest, input MomentInput) (*sdk.CallToolResult, report.Cycle, error) {
	at, err := s.parseAt(input.At)
	if err != nil {
		return nil, report.Cycle{}, err
	}
	return nil, report.FromCycle(s.svc.Cycle(at)), nil
}

func (s *Server) handleSkyNow(ctx context.Context, req *sdk.CallToolRequest, input SkyInput) (*sdk.CallToolResult, report.Sky, error) {
	at, err := s.parseAt(input.At)
	if err != nil {
		return nil, report.Sky{}, err
	}
	var loc *sky.Location
	if input.Latitude != nil || input.Longitude != nil {
		if input.Latitude == nil || input.Longitude == nil {
			return nil, report.Sky{}, fmt.Errorf("latitude and longitude must be given together")
		}
		loc = &sky.Location{Latitude: *input.Latitude, Longitude: *input.Longitude}
		if err := config.ValidateLocation(*loc); err != nil {
			return nil, report.Sky{}, err
		}
	}
	r, err := s.svc.Sky(at, loc)
	if err != nil {
		return nil, report.Sky{}, err
	}
	return nil, report.FromReport(r), nil
}

func (s *Server) handleListProfiles(ctx context.Context, req *sdk.CallToolRequest, input ListProfilesInput) (*sdk.CallToolResult, ListProfilesOutput, error) {
	items, err := s.db.ListProfiles(ctx, input.Tag)
	if err != nil {
		return nil, ListProfilesOutput{}, err
	}

	output := make([]ProfileSummaryOutput, 0, len(items))
	for _, item := range items {
		output = append(output, profileSummaryOutputFromStore(item))
	}
	return nil, ListProfilesOutput{Profiles: output}, nil
}

func (s *Server) handleSearchProfiles(ctx context.Context, req *sdk.CallToolRequest, input SearchProfilesInput) (*sdk.CallToolResult, SearchProfilesOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchProfilesOutput{}, fmt.Errorf("query is required")
	}
	results, err := s.db.Search(ctx, input.Query, input.Tag)
	if err != nil {
		return nil, SearchProfilesOutput{}, err
	}

	output := make([]SearchResultOutput, 0, len(results))
	for _, result := range results {
		output = append(output, searchResultOutputFromStore(result))
	}
	return nil, SearchProfilesOutput{Results: output}, nil
}

func (s *Server) parseAt(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return s.now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("at must be an RFC 3339 time: %w", err)
	}
	return t.UTC(), nil
}

func profileSummaryOutputFromStore(p store.ProfileSummary) ProfileSummaryOutput {
	return ProfileSummaryOutput{
		Name: p.Name,
		Born: p.Born.UTC().Format(time.RFC3339),
		Tags: append([]string{}, p.Tags...),
	}
}

func searchResultOutputFromStore(r store.SearchResult) SearchResultOutput {
	return SearchResultOutput{
		Name:    r.Name,
		Tags:    append([]string{}, r.Tags...),
		Score:   r.Score,
		Snippet: r.Snippet,
	}
}
