package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"astrolabe/internal/store"
)

func profilesCmd() *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List stored profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(tag)
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "Tag to filter")
	return cmd
}

func runProfiles(tag string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	profiles, err := db.ListProfiles(ctx, tag)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Fprintln(os.Stdout, "No profiles found.")
		return nil
	}

	for _, p := range profiles {
		line := fmt.Sprintf("%s (born %s)", p.Name, p.Born.UTC().Format(time.RFC3339))
		if len(p.Tags) > 0 {
			line += fmt.Sprintf(" [%s]", strings.Join(p.Tags, ", "))
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

func snapshotsCmd() *cobra.Command {
	var kind string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "snapshots <profile>",
		Short: "List chart snapshots stored for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshots(args[0], kind, asJSON)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Snapshot kind (natal, transit, progression, synastry)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print snapshots with their payloads as JSON")
	return cmd
}

func runSnapshots(profile, kind string, asJSON bool) error {
	ctx := context.Background()

	if kind != "" {
		parsed, err := store.ParseSnapshotKind(kind)
		if err != nil {
			return err
		}
		kind = string(parsed)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	snapshots, err := db.ListSnapshots(ctx, profile, kind)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(os.Stdout, snapshots)
	}
	if len(snapshots) == 0 {
		fmt.Fprintln(os.Stdout, "No snapshots found.")
		return nil
	}

	for _, s := range snapshots {
		fmt.Fprintf(os.Stdout, "#%d %s at %s (saved %s)\n", s.ID, s.Kind, s.At.UTC().Format(time.RFC3339), s.CreatedAt.UTC().Format(time.RFC3339))
	}
	return nil
}
