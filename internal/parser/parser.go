package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"astrolabe/internal/sky"
)

// Document is a birth profile read from a markdown file.
type Document struct {
	Frontmatter map[string]any
	Title       string
	Born        time.Time
	Location    *sky.Location
	Tags        []string
	Body        string
	SourceFile  string
}

var (
	ErrNoFrontmatter      = errors.New("no frontmatter found")
	ErrInvalidYAML        = errors.New("invalid YAML in frontmatter")
	ErrMissingTitle       = errors.New("frontmatter missing required 'title' field")
	ErrMissingBorn        = errors.New("frontmatter missing required 'born' field")
	ErrInvalidBorn        = errors.New("frontmatter 'born' must be an RFC 3339 timestamp")
	ErrIncompleteLocation = errors.New("frontmatter needs both 'latitude' and 'longitude'")
)

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

func Parse(content []byte) (*Document, error) {
	trimmed := bytes.TrimLeft(content, "﻿\n\r\t ")
	if !bytes.HasPrefix(trimmed, []byte("---\n")) {
		return nil, ErrNoFrontmatter
	}

	rest := trimmed[len("---\n"):]
	end := bytes.Index(rest, []byte("---\n"))
	if end == -1 {
		return nil, ErrNoFrontmatter
	}

	yamlBytes := rest[:end]
	body := string(rest[end+len("---\n"):])

	var frontmatter map[string]any
	if err := yaml.Unmarshal(yamlBytes, &frontmatter); err != nil {
		return nil, ErrInvalidYAML
	}

	title, ok := frontmatter["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return nil, ErrMissingTitle
	}

	born, err := parseBorn(frontmatter["born"])
	if err != nil {
		return nil, err
	}

	location, err := parseLocation(frontmatter["latitude"], frontmatter["longitude"])
	if err != nil {
		return nil, err
	}

	tags, err := parseTags(frontmatter["tags"])
	if err != nil {
		return nil, err
	}

	return &Document{
		Frontmatter: frontmatter,
		Title:       strings.TrimSpace(title),
		Born:        born,
		Location:    location,
		Tags:        tags,
		Body:        body,
	}, nil
}

func parseBorn(value any) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, ErrMissingBorn
	case time.Time:
		return v.UTC(), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return time.Time{}, ErrMissingBorn
		}
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBorn, v)
		}
		return t.UTC(), nil
	default:
		return time.Time{}, ErrInvalidBorn
	}
}

// parseLocation accepts both coordinates or neither. Range checks are left
// to validation so out-of-range profiles still reach the store and get
// reported.
func parseLocation(lat, lon any) (*sky.Location, error) {
	if lat == nil && lon == nil {
		return nil, nil
	}
	if lat == nil || lon == nil {
		return nil, ErrIncompleteLocation
	}
	latitude, err := toFloat("latitude", lat)
	if err != nil {
		return nil, err
	}
	longitude, err := toFloat("longitude", lon)
	if err != nil {
		return nil, err
	}
	return &sky.Location{Latitude: latitude, Longitude: longitude}, nil
}

func toFloat(field string, value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be a number", field)
	}
}

func parseTags(value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("tags must be strings")
			}
			if strings.TrimSpace(s) == "" {
				continue
			}
			tags = append(tags, s)
		}
		if len(tags) == 0 {
			return nil, nil
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("tags must be string or list of strings")
	}
}
