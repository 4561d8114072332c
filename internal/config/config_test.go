package config

import (
	"os"
	"path/filepath"
	"testing"

	"astrolabe/internal/aspect"
	"astrolabe/internal/frame"
)

const minimalConfig = "project: test\nversion: 1\ndatabase:\n  dsn: sqlite://:memory:\nephemeris:\n  path: eph.yaml\nprofiles:\n  paths: [./profiles]\n"

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads", func(t *testing.T) {
		cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "test-project" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.ZodiacFrame() != frame.Sidereal {
			t.Fatalf("expected sidereal zodiac, got %v", cfg.ZodiacFrame())
		}
		if cfg.Location == nil || cfg.Location.Latitude != 51.5 {
			t.Fatalf("expected default location, got %+v", cfg.Location)
		}
		if got := cfg.Resolve(cfg.Ephemeris.Path); got != filepath.Join("testdata", "ephemeris.yaml") {
			t.Fatalf("expected path relative to config, got %q", got)
		}
		if got := cfg.DatabaseDSN(); got != "sqlite://"+filepath.Join("testdata", "astrolabe.db") {
			t.Fatalf("expected sqlite path relative to config, got %q", got)
		}
	})

	t.Run("minimal config defaults to tropical", func(t *testing.T) {
		cfg, err := LoadProjectConfig(writeTempConfig(t, minimalConfig))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.ZodiacFrame() != frame.Tropical {
			t.Fatalf("expected tropical zodiac, got %v", cfg.ZodiacFrame())
		}
		if cfg.DatabaseDSN() != "sqlite://:memory:" {
			t.Fatalf("expected in-memory dsn untouched, got %q", cfg.DatabaseDSN())
		}
	})

	invalid := []struct {
		name     string
		contents string
	}{
		{name: "missing project name", contents: "version: 1\ndatabase:\n  dsn: sqlite://a.db\nephemeris:\n  path: e.yaml\nprofiles:\n  paths: [./p]\n"},
		{name: "unsupported version", contents: "project: t\nversion: 2\ndatabase:\n  dsn: sqlite://a.db\nephemeris:\n  path: e.yaml\nprofiles:\n  paths: [./p]\n"},
		{name: "missing dsn", contents: "project: t\nversion: 1\nephemeris:\n  path: e.yaml\nprofiles:\n  paths: [./p]\n"},
		{name: "unknown dsn scheme", contents: "project: t\nversion: 1\ndatabase:\n  dsn: mysql://x\nephemeris:\n  path: e.yaml\nprofiles:\n  paths: [./p]\n"},
		{name: "missing ephemeris", contents: "project: t\nversion: 1\ndatabase:\n  dsn: sqlite://a.db\nprofiles:\n  paths: [./p]\n"},
		{name: "unknown zodiac", contents: minimalConfig + "zodiac: draconic\n"},
		{name: "latitude out of range", contents: minimalConfig + "location:\n  latitude: 91\n  longitude: 0\n"},
		{name: "longitude out of range", contents: minimalConfig + "location:\n  latitude: 0\n  longitude: -181\n"},
		{name: "no profile paths", contents: "project: t\nversion: 1\ndatabase:\n  dsn: sqlite://a.db\nephemeris:\n  path: e.yaml\n"},
		{name: "unknown orb table", contents: minimalConfig + "orbs:\n  harmonic:\n    trine: 2\n"},
		{name: "unknown aspect", contents: minimalConfig + "orbs:\n  general:\n    quintile: 2\n"},
		{name: "orb out of range", contents: minimalConfig + "orbs:\n  general:\n    trine: 20\n"},
		{name: "invalid yaml", contents: "project: [\n"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadProjectConfig(writeTempConfig(t, tt.contents)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ASTROLABE_DSN", "postgres://localhost/astro")
	t.Setenv("ASTROLABE_ZODIAC", "sidereal")

	cfg, err := LoadProjectConfig(writeTempConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Database.DSN != "postgres://localhost/astro" {
		t.Fatalf("expected dsn from environment, got %q", cfg.Database.DSN)
	}
	if cfg.Ephemeris.Path != "eph.yaml" {
		t.Fatalf("expected ephemeris path from file, got %q", cfg.Ephemeris.Path)
	}
	if cfg.ZodiacFrame() != frame.Sidereal {
		t.Fatalf("expected sidereal zodiac from environment")
	}
}

func TestEnvOverrideIsValidated(t *testing.T) {
	t.Setenv("ASTROLABE_DSN", "redis://localhost")
	if _, err := LoadProjectConfig(writeTempConfig(t, minimalConfig)); err == nil {
		t.Fatalf("expected error for unsupported dsn from environment")
	}
}

func TestOrbSet(t *testing.T) {
	cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	set, err := cfg.OrbSet()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := set.Transit.Orb(aspect.Conjunction); got != 2 {
		t.Fatalf("expected transit conjunction orb 2, got %v", got)
	}
	if got, want := set.Transit.Orb(aspect.Trine), aspect.Transit().Orb(aspect.Trine); got != want {
		t.Fatalf("expected untouched trine orb %v, got %v", want, got)
	}
	if got, want := set.General.Orb(aspect.Conjunction), aspect.General().Orb(aspect.Conjunction); got != want {
		t.Fatalf("expected general table unchanged, got %v", got)
	}
}

func TestDriverFor(t *testing.T) {
	tests := []struct {
		dsn     string
		driver  string
		wantErr bool
	}{
		{dsn: "sqlite://./astro.db", driver: DriverSQLite},
		{dsn: "sqlite://:memory:", driver: DriverSQLite},
		{dsn: "postgres://localhost/astro", driver: DriverPostgres},
		{dsn: "postgresql://localhost/astro", driver: DriverPostgres},
		{dsn: "bolt://localhost:7687", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			driver, err := DriverFor(tt.dsn)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if driver != tt.driver {
				t.Fatalf("expected %q, got %q", tt.driver, driver)
			}
		})
	}
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
