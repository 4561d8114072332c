package sqlite

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"astrolabe/internal/sky"
	"astrolabe/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	client, err := New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { client.Close(ctx) })
	if err := client.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return client
}

func seedProfiles(t *testing.T, client *Client) {
	t.Helper()
	ctx := context.Background()
	inputs := []store.ProfileInput{
		{
			Name:       "Ada Lovelace",
			Born:       time.Date(1815, time.December, 10, 12, 0, 0, 0, time.UTC),
			Location:   &sky.Location{Latitude: 51.51, Longitude: -0.13},
			Tags:       []string{"mathematician", "writer"},
			Notes:      "Wrote the first published algorithm for the analytical engine.",
			SourceFile: "profiles/ada.md",
			SourceHash: "hash-ada",
		},
		{
			Name:       "Grace Hopper",
			Born:       time.Date(1906, time.December, 9, 17, 30, 0, 0, time.UTC),
			Tags:       []string{"Mathematician", "navy"},
			Notes:      "Built the first compiler.",
			SourceFile: "profiles/grace.md",
			SourceHash: "hash-grace",
		},
	}
	for _, in := range inputs {
		if err := client.UpsertProfile(ctx, in); err != nil {
			t.Fatalf("upserting %s: %v", in.Name, err)
		}
	}
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	client := newTestClient(t)
	if err := client.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("expected second EnsureSchema to succeed, got %v", err)
	}
}

func TestProfiles(t *testing.T) {
	client := newTestClient(t)
	seedProfiles(t, client)
	ctx := context.Background()

	t.Run("get is case insensitive", func(t *testing.T) {
		p, err := client.GetProfile(ctx, "ada lovelace")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p == nil || p.Name != "Ada Lovelace" {
			t.Fatalf("expected Ada Lovelace, got %+v", p)
		}
		if !p.Born.Equal(time.Date(1815, time.December, 10, 12, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected birth time to round trip, got %s", p.Born)
		}
		if p.Location == nil || p.Location.Latitude != 51.51 {
			t.Fatalf("expected location, got %+v", p.Location)
		}
		if len(p.Tags) != 2 || p.SourceHash != "hash-ada" {
			t.Fatalf("unexpected profile: %+v", p)
		}
	})

	t.Run("missing location stays nil", func(t *testing.T) {
		p, err := client.GetProfile(ctx, "Grace Hopper")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Location != nil {
			t.Fatalf("expected nil location, got %+v", p.Location)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		p, err := client.GetProfile(ctx, "nobody")
		if err != nil || p != nil {
			t.Fatalf("expected nil, nil; got %+v, %v", p, err)
		}
	})

	t.Run("list by tag", func(t *testing.T) {
		all, err := client.ListProfiles(ctx, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 2 || all[0].Name != "Ada Lovelace" {
			t.Fatalf("expected two ordered profiles, got %+v", all)
		}
		navy, err := client.ListProfiles(ctx, "NAVY")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(navy) != 1 || navy[0].Name != "Grace Hopper" {
			t.Fatalf("expected Grace Hopper, got %+v", navy)
		}
		math, err := client.ListProfiles(ctx, "mathematician")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(math) != 2 {
			t.Fatalf("expected 2 mathematicians, got %d", len(math))
		}
	})

	t.Run("upsert replaces", func(t *testing.T) {
		err := client.UpsertProfile(ctx, store.ProfileInput{
			Name:       "ADA LOVELACE",
			Born:       time.Date(1815, time.December, 10, 13, 0, 0, 0, time.UTC),
			SourceFile: "profiles/ada.md",
			SourceHash: "hash-ada-2",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		all, err := client.ListAllProfiles(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 profiles after upsert, got %d", len(all))
		}
		if all[0].Name != "ADA LOVELACE" || all[0].Born.Hour() != 13 || all[0].Location != nil {
			t.Fatalf("expected replaced profile, got %+v", all[0])
		}
	})
}

func TestSourceHashesAndCleanup(t *testing.T) {
	client := newTestClient(t)
	seedProfiles(t, client)
	ctx := context.Background()

	hashes, err := client.GetSourceHashes(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashes["profiles/grace.md"] != "hash-grace" || len(hashes) != 2 {
		t.Fatalf("unexpected hashes: %v", hashes)
	}

	removed, err := client.RemoveStaleProfiles(ctx, []string{"profiles/ada.md"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if p, _ := client.GetProfile(ctx, "Grace Hopper"); p != nil {
		t.Fatalf("expected Grace Hopper to be removed")
	}

	removed, err = client.RemoveStaleProfiles(ctx, nil)
	if err != nil || removed != 0 {
		t.Fatalf("expected no-op for empty list, got %d, %v", removed, err)
	}
}

func TestSearch(t *testing.T) {
	client := newTestClient(t)
	seedProfiles(t, client)
	ctx := context.Background()

	results, err := client.Search(ctx, "compiler", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Grace Hopper" {
		t.Fatalf("expected Grace Hopper, got %+v", results)
	}

	results, err = client.Search(ctx, "first", "writer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Ada Lovelace" {
		t.Fatalf("expected tag filter to keep Ada Lovelace, got %+v", results)
	}

	if _, err := client.Search(ctx, "  ", ""); err == nil {
		t.Fatalf("expected error for empty query")
	}
}

func TestSnapshots(t *testing.T) {
	client := newTestClient(t)
	seedProfiles(t, client)
	ctx := context.Background()

	at := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	payload, _ := json.Marshal(map[string]any{"sun": 130.5})
	id, err := client.SaveSnapshot(ctx, store.SnapshotInput{
		Profile: "ada lovelace",
		Kind:    store.KindTransit,
		At:      at,
		Payload: payload,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected snapshot id")
	}
	if _, err := client.SaveSnapshot(ctx, store.SnapshotInput{Profile: "Ada Lovelace", Kind: store.KindNatal, At: at.AddDate(-200, 0, 0)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := client.ListSnapshots(ctx, "Ada Lovelace", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 || all[0].Kind != store.KindTransit {
		t.Fatalf("expected newest snapshot first, got %+v", all)
	}
	if !all[0].At.Equal(at) || string(all[0].Payload) != string(payload) {
		t.Fatalf("unexpected snapshot: %+v", all[0])
	}
	if string(all[1].Payload) != "{}" {
		t.Fatalf("expected empty payload default, got %s", all[1].Payload)
	}

	natal, err := client.ListSnapshots(ctx, "Ada Lovelace", string(store.KindNatal))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(natal) != 1 {
		t.Fatalf("expected 1 natal snapshot, got %d", len(natal))
	}

	if _, err := client.SaveSnapshot(ctx, store.SnapshotInput{Profile: "nobody", Kind: store.KindNatal, At: at}); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
}

func TestRunSQL(t *testing.T) {
	client := newTestClient(t)
	seedProfiles(t, client)

	rows, err := client.RunSQL(context.Background(),
		"SELECT name FROM profiles WHERE born < ? ORDER BY name",
		map[string]any{"1": "1900-01-01T00:00:00Z"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "Ada Lovelace" {
		t.Fatalf("expected Ada Lovelace, got %v", rows)
	}
}

func TestSplitStatementsKeepsTriggers(t *testing.T) {
	ddl := `
	CREATE TABLE a (id INTEGER);
	-- comment;
	CREATE TRIGGER a_ai AFTER INSERT ON a BEGIN
		INSERT INTO b VALUES (new.id);
		INSERT INTO c VALUES (new.id);
	END;
	CREATE INDEX idx ON a (id);
	`
	statements := splitStatements(ddl)
	if len(statements) != 3 {
		t.Fatalf("expected 3 statements, got %d: %q", len(statements), statements)
	}
	trigger := statements[1]
	if !strings.Contains(trigger, "INSERT INTO b") || !strings.Contains(trigger, "END;") {
		t.Fatalf("expected whole trigger body, got %q", trigger)
	}
}
