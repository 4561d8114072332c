package main

import (
	"context"
	"fmt"

	"astrolabe/internal/chart"
	"astrolabe/internal/config"
	"astrolabe/internal/ephemeris"
	"astrolabe/internal/frame"
	"astrolabe/internal/service"
	"astrolabe/internal/store"
	"astrolabe/internal/store/postgres"
	"astrolabe/internal/store/sqlite"
)

func loadConfig() (*config.ProjectConfig, error) {
	return config.LoadProjectConfig(configPath)
}

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	driver, err := config.DriverFor(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	var db store.Store
	switch driver {
	case config.DriverPostgres:
		db, err = postgres.New(ctx, cfg.Database.DSN)
	default:
		db, err = sqlite.New(ctx, cfg.DatabaseDSN())
	}
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

func newBuilder(cfg *config.ProjectConfig) (*chart.Builder, error) {
	table, err := ephemeris.Load(cfg.Resolve(cfg.Ephemeris.Path))
	if err != nil {
		return nil, err
	}

	var tables chart.Tables
	if cfg.Tables != "" {
		loaded, err := config.LoadTables(cfg.Resolve(cfg.Tables))
		if err != nil {
			return nil, err
		}
		tables = chart.Tables{Dignity: loaded.Dignity, Cycles: loaded.Cycles}
	}

	orbs, err := cfg.OrbSet()
	if err != nil {
		return nil, err
	}
	return chart.NewBuilder(frame.New(table, cfg.ZodiacFrame()), tables, orbs), nil
}

func newService(cfg *config.ProjectConfig, db store.Store) (*service.Service, error) {
	builder, err := newBuilder(cfg)
	if err != nil {
		return nil, err
	}
	return service.New(db, builder, cfg.Location), nil
}

// session opens everything a chart command needs. The caller closes db.
func session(ctx context.Context) (store.Store, *service.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	svc, err := newService(cfg, db)
	if err != nil {
		db.Close(ctx)
		return nil, nil, err
	}
	return db, svc, nil
}
