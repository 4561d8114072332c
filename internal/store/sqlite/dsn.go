package sqlite

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// parseDSN turns sqlite://path[?query] into a modernc file name. Relative
// paths stay relative to the working directory; the query passes through.
func parseDSN(dsn string) (string, error) {
	rest, ok := strings.CutPrefix(dsn, "sqlite://")
	if !ok {
		return "", fmt.Errorf("invalid sqlite DSN scheme, expected sqlite://")
	}

	path, query, hasQuery := strings.Cut(rest, "?")
	if path == ":memory:" {
		return ":memory:", nil
	}
	if path == "" {
		return "", fmt.Errorf("sqlite DSN has no database path")
	}

	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return "", fmt.Errorf("unescaping path: %w", err)
	}
	path = filepath.Clean(unescaped)
	if !filepath.IsAbs(path) {
		path = "." + string(filepath.Separator) + path
	}

	if hasQuery {
		return path + "?" + query, nil
	}
	return path, nil
}
