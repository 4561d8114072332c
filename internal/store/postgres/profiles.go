package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"astrolabe/internal/sky"
	"astrolabe/internal/store"
)

func (c *Client) UpsertProfile(ctx context.Context, p store.ProfileInput) error {
	tags := p.Tags
	if len(tags) == 0 {
		tags = nil
	}

	var lat, lon *float64
	if p.Location != nil {
		lat = &p.Location.Latitude
		lon = &p.Location.Longitude
	}

	query := `
INSERT INTO profiles (name, name_normalized, born, latitude, longitude, tags, notes, source_file, source_hash, last_ingested, search_vector)
VALUES ($1, $2, $3, $4, $5, COALESCE($6, '{}'::text[]), $7, $8, $9, now(),
    setweight(to_tsvector('simple', coalesce($1, '')), 'A') ||
    setweight(to_tsvector('english', coalesce(array_to_string(COALESCE($6, '{}'::text[]), ' '), '')), 'B') ||
    setweight(to_tsvector('english', coalesce($7, '')), 'C')
)
ON CONFLICT (name_normalized) DO UPDATE SET
    name = EXCLUDED.name,
    born = EXCLUDED.born,
    latitude = EXCLUDED.latitude,
    longitude = EXCLUDED.longitude,
    tags = EXCLUDED.tags,
    notes = EXCLUDED.notes,
    source_file = EXCLUDED.source_file,
    source_hash = EXCLUDED.source_hash,
    last_ingested = now(),
    search_vector = EXCLUDED.search_vector
`

	_, err := c.pool.Exec(ctx, query,
		p.Name,
		store.NormalizeName(p.Name),
		p.Born.UTC(),
		lat,
		lon,
		tags,
		p.Notes,
		p.SourceFile,
		p.SourceHash,
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

const profileColumns = `name, born, latitude, longitude, tags, notes, coalesce(source_file, ''), coalesce(source_hash, '')`

func (c *Client) GetProfile(ctx context.Context, name string) (*store.Profile, error) {
	row := c.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE name_normalized = $1`,
		store.NormalizeName(name),
	)
	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return p, nil
}

func (c *Client) ListProfiles(ctx context.Context, tag string) ([]store.ProfileSummary, error) {
	query := `
SELECT name, born, tags
FROM profiles
WHERE $1 = '' OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE lower(t) = lower($1))
ORDER BY name_normalized
`

	rows, err := c.pool.Query(ctx, query, tag)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	results := []store.ProfileSummary{}
	for rows.Next() {
		var s store.ProfileSummary
		if err := rows.Scan(&s.Name, &s.Born, &s.Tags); err != nil {
			return nil, fmt.Errorf("scanning profile summary: %w", err)
		}
		s.Born = s.Born.UTC()
		if s.Tags == nil {
			s.Tags = []string{}
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return results, nil
}

func (c *Client) ListAllProfiles(ctx context.Context) ([]store.Profile, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY name_normalized`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	results := []store.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		results = append(results, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return results, nil
}

func scanProfile(row pgx.Row) (*store.Profile, error) {
	var p store.Profile
	var lat, lon *float64
	if err := row.Scan(&p.Name, &p.Born, &lat, &lon, &p.Tags, &p.Notes, &p.SourceFile, &p.SourceHash); err != nil {
		return nil, err
	}
	p.Born = p.Born.UTC()
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if lat != nil && lon != nil {
		p.Location = &sky.Location{Latitude: *lat, Longitude: *lon}
	}
	return &p, nil
}
