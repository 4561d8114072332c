package postgres

import (
	"context"
	"fmt"
	"strings"

	"astrolabe/internal/store"
)

func (c *Client) Search(ctx context.Context, query, tag string) ([]store.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	sql := `
SELECT name, tags,
    ts_rank(search_vector, websearch_to_tsquery('english', $1)) AS score,
    CASE WHEN notes <> '' THEN
        ts_headline('english', notes, websearch_to_tsquery('english', $1),
            'MaxFragments=2, MaxWords=40, MinWords=20, StartSel=**, StopSel=**')
    ELSE '' END AS snippet
FROM profiles
WHERE search_vector @@ websearch_to_tsquery('english', $1)
  AND ($2 = '' OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE lower(t) = lower($2)))
ORDER BY score DESC, name ASC
LIMIT 50
`

	rows, err := c.pool.Query(ctx, sql, query, tag)
	if err != nil {
		return nil, fmt.Errorf("searching profiles: %w", err)
	}
	defer rows.Close()

	results := []store.SearchResult{}
	for rows.Next() {
		var r store.SearchResult
		var score float32
		if err := rows.Scan(&r.Name, &r.Tags, &score, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		r.Score = float64(score)
		if r.Tags == nil {
			r.Tags = []string{}
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	return results, nil
}
