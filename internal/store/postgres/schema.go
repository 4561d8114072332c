package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// All statements go in one call, which PostgreSQL runs as a single
	// implicit transaction.
	ddl := `
CREATE TABLE IF NOT EXISTS profiles (
    id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    name            TEXT NOT NULL,
    name_normalized TEXT NOT NULL,
    born            TIMESTAMPTZ NOT NULL,
    latitude        DOUBLE PRECISION,
    longitude       DOUBLE PRECISION,
    tags            TEXT[] DEFAULT '{}',
    notes           TEXT DEFAULT '',
    source_file     TEXT,
    source_hash     TEXT,
    last_ingested   TIMESTAMPTZ DEFAULT now(),
    CONSTRAINT uq_profile_name UNIQUE (name_normalized)
);

ALTER TABLE profiles ADD COLUMN IF NOT EXISTS search_vector TSVECTOR;

CREATE TABLE IF NOT EXISTS snapshots (
    id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    profile_id  BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    kind        TEXT NOT NULL,
    at          TIMESTAMPTZ NOT NULL,
    payload     JSONB NOT NULL DEFAULT '{}',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_profiles_search ON profiles USING GIN (search_vector);
CREATE INDEX IF NOT EXISTS idx_profiles_source_file ON profiles (source_file);
CREATE INDEX IF NOT EXISTS idx_profiles_tags ON profiles USING GIN (tags);
CREATE INDEX IF NOT EXISTS idx_snapshots_profile ON snapshots (profile_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_profile_kind ON snapshots (profile_id, kind);
`
	_, err := c.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
