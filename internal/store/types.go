package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"astrolabe/internal/sky"
)

type ProfileInput struct {
	Name       string
	Born       time.Time
	Location   *sky.Location
	Tags       []string
	Notes      string
	SourceFile string
	SourceHash string
}

type Profile struct {
	Name       string        `json:"name"`
	Born       time.Time     `json:"born"`
	Location   *sky.Location `json:"location,omitempty"`
	Tags       []string      `json:"tags"`
	Notes      string        `json:"notes,omitempty"`
	SourceFile string        `json:"source_file,omitempty"`
	SourceHash string        `json:"-"`
}

type ProfileSummary struct {
	Name string    `json:"name"`
	Born time.Time `json:"born"`
	Tags []string  `json:"tags"`
}

type SearchResult struct {
	Name    string   `json:"name"`
	Tags    []string `json:"tags"`
	Score   float64  `json:"score"`
	Snippet string   `json:"snippet"`
}

// SnapshotKind names what a stored chart snapshot contains.
type SnapshotKind string

const (
	KindNatal       SnapshotKind = "natal"
	KindTransit     SnapshotKind = "transit"
	KindProgression SnapshotKind = "progression"
	KindSynastry    SnapshotKind = "synastry"
)

func ParseSnapshotKind(name string) (SnapshotKind, error) {
	kind := SnapshotKind(strings.ToLower(strings.TrimSpace(name)))
	switch kind {
	case KindNatal, KindTransit, KindProgression, KindSynastry:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown snapshot kind %q", name)
	}
}

type SnapshotInput struct {
	Profile string
	Kind    SnapshotKind
	At      time.Time
	Payload json.RawMessage
}

type Snapshot struct {
	ID        int64           `json:"id"`
	Profile   string          `json:"profile"`
	Kind      SnapshotKind    `json:"kind"`
	At        time.Time       `json:"at"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// NormalizeName is the key profiles are matched on.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
