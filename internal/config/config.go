package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"astrolabe/internal/aspect"
	"astrolabe/internal/frame"
	"astrolabe/internal/sky"
)

// DefaultPath is where commands look for the project file.
const DefaultPath = "astrolabe.yaml"

type ProjectConfig struct {
	Project   string                        `yaml:"project"`
	Version   int                           `yaml:"version"`
	Database  DatabaseConfig                `yaml:"database"`
	Ephemeris EphemerisConfig               `yaml:"ephemeris"`
	Tables    string                        `yaml:"tables"`
	Zodiac    string                        `yaml:"zodiac"`
	Location  *sky.Location                 `yaml:"location"`
	Profiles  ProfilesConfig                `yaml:"profiles"`
	Orbs      map[string]map[string]float64 `yaml:"orbs"`

	dir string
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type EphemerisConfig struct {
	Path string `yaml:"path"`
}

type ProfilesConfig struct {
	Paths   []string `yaml:"paths"`
	Exclude []string `yaml:"exclude"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var overrides EnvOverrides
	if err := ParseEnv(&overrides); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	overrides.Apply(&cfg)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	dsn := strings.TrimSpace(cfg.Database.DSN)
	if dsn == "" {
		return fmt.Errorf("database dsn is required")
	}
	if _, err := DriverFor(dsn); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Ephemeris.Path) == "" {
		return fmt.Errorf("ephemeris path is required")
	}
	if _, err := frame.ParseZodiac(cfg.Zodiac); err != nil {
		return err
	}
	if cfg.Location != nil {
		if err := ValidateLocation(*cfg.Location); err != nil {
			return fmt.Errorf("location: %w", err)
		}
	}
	if len(cfg.Profiles.Paths) == 0 {
		return fmt.Errorf("at least one profile path is required")
	}
	if _, err := cfg.OrbSet(); err != nil {
		return err
	}
	return nil
}

// ValidateLocation checks geographic ranges.
func ValidateLocation(loc sky.Location) error {
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", loc.Latitude)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", loc.Longitude)
	}
	return nil
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DriverFor picks the store backend from the DSN scheme.
func DriverFor(dsn string) (string, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return DriverSQLite, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database dsn scheme: %q", dsn)
	}
}

// ZodiacFrame returns the configured zodiac. The value was checked on load.
func (c *ProjectConfig) ZodiacFrame() frame.Zodiac {
	z, _ := frame.ParseZodiac(c.Zodiac)
	return z
}

// OrbSet applies the orb overrides on top of the built-in tables.
func (c *ProjectConfig) OrbSet() (aspect.Set, error) {
	set := aspect.DefaultSet()
	for name, orbs := range c.Orbs {
		base, err := aspect.ConfigByName(name)
		if err != nil {
			return aspect.Set{}, fmt.Errorf("orbs: %w", err)
		}
		overrides := make(map[aspect.Kind]float64, len(orbs))
		for kindName, orb := range orbs {
			kind, ok := aspect.ParseKind(kindName)
			if !ok {
				return aspect.Set{}, fmt.Errorf("orbs %s: unknown aspect %q", name, kindName)
			}
			if orb <= 0 || orb > 15 {
				return aspect.Set{}, fmt.Errorf("orbs %s %s: %v out of range (0, 15]", name, kindName, orb)
			}
			overrides[kind] = orb
		}
		switch base.Name {
		case aspect.NameGeneral:
			set.General = set.General.WithOrbs(overrides)
		case aspect.NameTransit:
			set.Transit = set.Transit.WithOrbs(overrides)
		case aspect.NameProgression:
			set.Progression = set.Progression.WithOrbs(overrides)
		}
	}
	return set, nil
}

// Resolve makes a relative path relative to the config file's directory.
func (c *ProjectConfig) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

// DatabaseDSN is the configured DSN with a relative sqlite path resolved
// against the config directory.
func (c *ProjectConfig) DatabaseDSN() string {
	dsn := c.Database.DSN
	rest, ok := strings.CutPrefix(dsn, "sqlite://")
	if !ok || rest == "" || strings.HasPrefix(rest, ":memory:") || filepath.IsAbs(rest) {
		return dsn
	}
	return "sqlite://" + c.Resolve(rest)
}
