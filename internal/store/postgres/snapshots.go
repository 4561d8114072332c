package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"astrolabe/internal/store"
)

func (c *Client) SaveSnapshot(ctx context.Context, s store.SnapshotInput) (int64, error) {
	payload := string(s.Payload)
	if payload == "" {
		payload = "{}"
	}

	query := `
INSERT INTO snapshots (profile_id, kind, at, payload)
SELECT id, $2::text, $3::timestamptz, $4::jsonb FROM profiles WHERE name_normalized = $1
RETURNING id
`

	var id int64
	err := c.pool.QueryRow(ctx, query, store.NormalizeName(s.Profile), string(s.Kind), s.At.UTC(), payload).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("saving snapshot: profile %q not found", s.Profile)
	}
	if err != nil {
		return 0, fmt.Errorf("saving snapshot: %w", err)
	}
	return id, nil
}

func (c *Client) ListSnapshots(ctx context.Context, profile, kind string) ([]store.Snapshot, error) {
	query := `
SELECT s.id, p.name, s.kind, s.at, s.payload::text, s.created_at
FROM snapshots s
JOIN profiles p ON p.id = s.profile_id
WHERE p.name_normalized = $1
  AND ($2 = '' OR s.kind = $2)
ORDER BY s.at DESC, s.id DESC
`

	rows, err := c.pool.Query(ctx, query, store.NormalizeName(profile), kind)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	results := []store.Snapshot{}
	for rows.Next() {
		var s store.Snapshot
		var kindValue, payload string
		if err := rows.Scan(&s.ID, &s.Profile, &kindValue, &s.At, &payload, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		s.Kind = store.SnapshotKind(kindValue)
		s.At = s.At.UTC()
		s.CreatedAt = s.CreatedAt.UTC()
		s.Payload = []byte(payload)
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return results, nil
}
