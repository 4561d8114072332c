package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var projectName string
	var dsn string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new astrolabe project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName, dsn)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&dsn, "dsn", "sqlite://astrolabe.db", "Database DSN (sqlite:// or postgres://)")
	return cmd
}

const exampleProfile = `---
title: Example
born: "1990-08-03T14:30:00Z"
latitude: 51.5
longitude: -0.12
tags: [example]
---

Notes about this person go here. They are indexed for search.
`

func runInit(projectName, dsn string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	dir := filepath.Dir(configPath)
	profilesDir := filepath.Join(dir, "profiles")
	examplePath := filepath.Join(profilesDir, "example.md")

	configContents := fmt.Sprintf("project: %s\nversion: 1\n\ndatabase:\n  dsn: %s\n\nephemeris:\n  path: ./ephemeris.yaml\n\nzodiac: tropical\n\nprofiles:\n  paths:\n    - ./profiles/\n  exclude:\n    - ./profiles/drafts/\n", projectName, dsn)
	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	if err := os.MkdirAll(profilesDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", profilesDir, err)
	}
	if _, err := os.Stat(examplePath); err == nil {
		return nil
	}
	if err := os.WriteFile(examplePath, []byte(exampleProfile), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", examplePath, err)
	}

	return nil
}
