package store

import (
	"context"
)

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	UpsertProfile(ctx context.Context, p ProfileInput) error
	RemoveStaleProfiles(ctx context.Context, currentSourceFiles []string) (int64, error)
	GetSourceHashes(ctx context.Context) (map[string]string, error)

	GetProfile(ctx context.Context, name string) (*Profile, error)
	ListProfiles(ctx context.Context, tag string) ([]ProfileSummary, error)
	ListAllProfiles(ctx context.Context) ([]Profile, error)
	Search(ctx context.Context, query, tag string) ([]SearchResult, error)

	SaveSnapshot(ctx context.Context, s SnapshotInput) (int64, error)
	ListSnapshots(ctx context.Context, profile, kind string) ([]Snapshot, error)

	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}
