package sqlite

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

	ftsQuery := convertWebsearchToFTS5(query)

	sqlQuery := `
	SELECT p.name, p.tags,
		   bm25(profiles_fts, 10.0, 4.0, 1.0) AS score,
		   snippet(profiles_fts, 2, '**', '**', '...', 50) AS snippet
	FROM profiles_fts
	JOIN profiles p ON profiles_fts.rowid = p.id
	WHERE profiles_fts MATCH ?
	  AND (? = '' OR EXISTS (
		SELECT 1 FROM json_each(p.tags) t WHERE lower(t.value) = lower(?)
	  ))
	ORDER BY score ASC, p.name ASC
	LIMIT 50
	`

	rows, err := c.db.QueryContext(ctx, sqlQuery, ftsQuery, tag, tag)
	if err != nil {
		return nil, fmt.Errorf("searching profiles: %w", err)
	}
	defer rows.Close()

	results := []store.SearchResult{}
	for rows.Next() {
		var r store.SearchResult
		var tags string
		if err := rows.Scan(&r.Name, &tags, &r.Score, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		if r.Tags, err = unmarshalTags(tags); err != nil {
			return nil, err
		}
		// bm25 ranks better matches lower; flip it so higher is better.
		r.Score = -r.Score
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	return results, nil
}

// convertWebsearchToFTS5 rewrites websearch-style input into an FTS5 MATCH
// expression. Adjacent terms are joined with AND and a leading '-' becomes NOT.
func convertWebsearchToFTS5(query string) string {
	var out []string
	for _, term := range websearchTerms(query) {
		if !strings.HasPrefix(term, `"`) && isFTSOperator(strings.ToUpper(term)) {
			out = append(out, strings.ToUpper(term))
			continue
		}
		if len(out) > 0 && !isFTSOperator(out[len(out)-1]) {
			out = append(out, "AND")
		}
		if len(term) > 1 && term[0] == '-' {
			out = append(out, "NOT", term[1:])
			continue
		}
		out = append(out, term)
	}
	return strings.Join(out, " ")
}

// websearchTerms splits on blanks, keeping quoted phrases whole with their
// quotes. An unterminated quote runs to the end of the input.
func websearchTerms(query string) []string {
	var terms []string
	var current strings.Builder
	inQuote := false

	flush := func() {
		if current.Len() > 0 {
			terms = append(terms, current.String())
			current.Reset()
		}
	}
	phrase := func() {
		if current.Len() > 0 {
			terms = append(terms, `"`+current.String()+`"`)
			current.Reset()
		}
	}

	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '"' && inQuote:
			phrase()
			inQuote = false
		case ch == '"':
			flush()
			inQuote = true
		case inQuote:
			current.WriteByte(ch)
		case ch == ' ' || ch == '\t':
			flush()
		default:
			current.WriteByte(ch)
		}
	}
	if inQuote {
		phrase()
	} else {
		flush()
	}
	return terms
}

func isFTSOperator(word string) bool {
	return word == "AND" || word == "OR" || word == "NOT"
}
