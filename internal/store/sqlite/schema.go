package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS profiles (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		name_normalized TEXT NOT NULL,
		born            TEXT NOT NULL,
		latitude        REAL,
		longitude       REAL,
		tags            TEXT DEFAULT '[]',
		notes           TEXT DEFAULT '',
		source_file     TEXT,
		source_hash     TEXT,
		last_ingested   TEXT DEFAULT (datetime('now')),
		CONSTRAINT uq_profile_name UNIQUE (name_normalized)
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_id  INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		kind        TEXT NOT NULL,
		at          TEXT NOT NULL,
		payload     TEXT NOT NULL DEFAULT '{}',
		created_at  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_source_file ON profiles (source_file);
	CREATE INDEX IF NOT EXISTS idx_snapshots_profile ON snapshots (profile_id);
	CREATE INDEX IF NOT EXISTS idx_snapshots_profile_kind ON snapshots (profile_id, kind);

	CREATE VIRTUAL TABLE IF NOT EXISTS profiles_fts USING fts5(
		name,
		tags,
		notes,
		content=profiles,
		content_rowid=id
	);

	CREATE TRIGGER IF NOT EXISTS profiles_ai AFTER INSERT ON profiles BEGIN
		INSERT INTO profiles_fts(rowid, name, tags, notes)
		VALUES (new.id, new.name, new.tags, new.notes);
	END;

	CREATE TRIGGER IF NOT EXISTS profiles_ad AFTER DELETE ON profiles BEGIN
		INSERT INTO profiles_fts(profiles_fts, rowid, name, tags, notes)
		VALUES ('delete', old.id, old.name, old.tags, old.notes);
	END;

	CREATE TRIGGER IF NOT EXISTS profiles_au AFTER UPDATE ON profiles BEGIN
		INSERT INTO profiles_fts(profiles_fts, rowid, name, tags, notes)
		VALUES ('delete', old.id, old.name, old.tags, old.notes);
		INSERT INTO profiles_fts(rowid, name, tags, notes)
		VALUES (new.id, new.name, new.tags, new.notes);
	END;
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	statements := splitStatements(ddl)
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

// splitStatements cuts DDL on trailing semicolons, keeping trigger bodies
// (BEGIN ... END;) whole.
func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder
	inTrigger := false

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		upper := strings.ToUpper(stripped)
		if strings.HasPrefix(upper, "CREATE TRIGGER") {
			inTrigger = true
		}
		if inTrigger {
			if upper == "END;" {
				statements = append(statements, current.String())
				current.Reset()
				inTrigger = false
			}
			continue
		}

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}

	return statements
}
