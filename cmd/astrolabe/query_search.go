package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func querySearchCmd() *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search profiles using the full-text index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runQuerySearch(cmd, query, tag)
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "Tag to filter")
	return cmd
}

func runQuerySearch(cmd *cobra.Command, query, tag string) error {
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

	results, err := db.Search(ctx, query, tag)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return nil
	}

	for _, result := range results {
		fmt.Fprintf(os.Stdout, "%s [%s] score=%.2f\n", result.Name, strings.Join(result.Tags, ", "), result.Score)
		if result.Snippet != "" {
			fmt.Fprintf(os.Stdout, "  %s\n", result.Snippet)
		}
	}
	return nil
}
