package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides are environment variables that take precedence over the
// project file.
type EnvOverrides struct {
	DSN       string `env:"ASTROLABE_DSN"`
	Ephemeris string `env:"ASTROLABE_EPHEMERIS"`
	Zodiac    string `env:"ASTROLABE_ZODIAC"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (o EnvOverrides) Apply(cfg *ProjectConfig) {
	if o.DSN != "" {
		cfg.Database.DSN = o.DSN
	}
	if o.Ephemeris != "" {
		cfg.Ephemeris.Path = o.Ephemeris
	}
	if o.Zodiac != "" {
		cfg.Zodiac = o.Zodiac
	}
}
