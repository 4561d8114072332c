package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"astrolabe/internal/store"
)

func (c *Client) SaveSnapshot(ctx context.Context, s store.SnapshotInput) (int64, error) {
	var profileID int64
	err := c.db.QueryRowContext(ctx,
		"SELECT id FROM profiles WHERE name_normalized = ?",
		store.NormalizeName(s.Profile),
	).Scan(&profileID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("saving snapshot: profile %q not found", s.Profile)
	}
	if err != nil {
		return 0, fmt.Errorf("saving snapshot: %w", err)
	}

	payload := string(s.Payload)
	if payload == "" {
		payload = "{}"
	}

	result, err := c.db.ExecContext(ctx,
		"INSERT INTO snapshots (profile_id, kind, at, payload, created_at) VALUES (?, ?, ?, ?, ?)",
		profileID, string(s.Kind), formatTime(s.At), payload, formatTime(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("saving snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting snapshot id: %w", err)
	}
	return id, nil
}

func (c *Client) ListSnapshots(ctx context.Context, profile, kind string) ([]store.Snapshot, error) {
	query := `
	SELECT s.id, p.name, s.kind, s.at, s.payload, s.created_at
	FROM snapshots s
	JOIN profiles p ON p.id = s.profile_id
	WHERE p.name_normalized = ?
	  AND (? = '' OR s.kind = ?)
	ORDER BY s.at DESC, s.id DESC
	`

	rows, err := c.db.QueryContext(ctx, query, store.NormalizeName(profile), kind, kind)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	results := []store.Snapshot{}
	for rows.Next() {
		var s store.Snapshot
		var kindValue, at, payload, created string
		if err := rows.Scan(&s.ID, &s.Profile, &kindValue, &at, &payload, &created); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		s.Kind = store.SnapshotKind(kindValue)
		if s.At, err = parseTime(at); err != nil {
			return nil, err
		}
		if s.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		s.Payload = []byte(payload)
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return results, nil
}
