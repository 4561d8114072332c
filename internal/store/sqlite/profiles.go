package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"astrolabe/internal/sky"
	"astrolabe/internal/store"
)

func (c *Client) UpsertProfile(ctx context.Context, p store.ProfileInput) error {
	tagsJSON, err := json.Marshal(nonNilTags(p.Tags))
	if err != nil {
		return fmt.Errorf("marshaling tags: %w", err)
	}

	var lat, lon sql.NullFloat64
	if p.Location != nil {
		lat = sql.NullFloat64{Float64: p.Location.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: p.Location.Longitude, Valid: true}
	}

	query := `
	INSERT INTO profiles (name, name_normalized, born, latitude, longitude, tags, notes, source_file, source_hash, last_ingested)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
	ON CONFLICT (name_normalized) DO UPDATE SET
		name = excluded.name,
		born = excluded.born,
		latitude = excluded.latitude,
		longitude = excluded.longitude,
		tags = excluded.tags,
		notes = excluded.notes,
		source_file = excluded.source_file,
		source_hash = excluded.source_hash,
		last_ingested = datetime('now')
	`

	_, err = c.db.ExecContext(ctx, query,
		p.Name,
		store.NormalizeName(p.Name),
		formatTime(p.Born),
		lat,
		lon,
		string(tagsJSON),
		p.Notes,
		p.SourceFile,
		p.SourceHash,
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

const profileColumns = `name, born, latitude, longitude, tags, notes, source_file, source_hash`

func (c *Client) GetProfile(ctx context.Context, name string) (*store.Profile, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE name_normalized = ?`,
		store.NormalizeName(name),
	)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return p, nil
}

func (c *Client) ListProfiles(ctx context.Context, tag string) ([]store.ProfileSummary, error) {
	query := `
	SELECT p.name, p.born, p.tags
	FROM profiles p
	WHERE (? = '' OR EXISTS (
		SELECT 1 FROM json_each(p.tags) t WHERE lower(t.value) = lower(?)
	))
	ORDER BY p.name_normalized
	`

	rows, err := c.db.QueryContext(ctx, query, tag, tag)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	results := []store.ProfileSummary{}
	for rows.Next() {
		var s store.ProfileSummary
		var born, tags string
		if err := rows.Scan(&s.Name, &born, &tags); err != nil {
			return nil, fmt.Errorf("scanning profile summary: %w", err)
		}
		if s.Born, err = parseTime(born); err != nil {
			return nil, err
		}
		if s.Tags, err = unmarshalTags(tags); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return results, nil
}

func (c *Client) ListAllProfiles(ctx context.Context) ([]store.Profile, error) {
	rows, err := c.db.QueryContext(ctx,
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

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*store.Profile, error) {
	var p store.Profile
	var born, tags string
	var lat, lon sql.NullFloat64
	var sourceFile, sourceHash sql.NullString
	if err := row.Scan(&p.Name, &born, &lat, &lon, &tags, &p.Notes, &sourceFile, &sourceHash); err != nil {
		return nil, err
	}

	var err error
	if p.Born, err = parseTime(born); err != nil {
		return nil, err
	}
	if p.Tags, err = unmarshalTags(tags); err != nil {
		return nil, err
	}
	if lat.Valid && lon.Valid {
		p.Location = &sky.Location{Latitude: lat.Float64, Longitude: lon.Float64}
	}
	p.SourceFile = sourceFile.String
	p.SourceHash = sourceHash.String
	return &p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", value, err)
	}
	return t, nil
}

func unmarshalTags(raw string) ([]string, error) {
	var tags []string
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}
	return nonNilTags(tags), nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
