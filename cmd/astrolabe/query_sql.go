package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func querySQLCmd() *cobra.Command {
	var paramPairs []string
	cmd := &cobra.Command{
		Use:   "sql <query>",
		Short: "Execute a raw SQL query against the profile store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			params, err := parseParamPairs(paramPairs)
			if err != nil {
				return err
			}
			return runSQL(query, params)
		},
	}
	cmd.Flags().StringArrayVar(&paramPairs, "param", nil, "Positional parameter as n=value, e.g. 1=ada (repeatable)")
	return cmd
}

func runSQL(query string, params map[string]any) error {
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

	rows, err := db.RunSQL(ctx, query, params)
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, rows)
}

// parseParamPairs binds integers and floats as numbers and everything else
// as text.
func parseParamPairs(pairs []string) (map[string]any, error) {
	params := make(map[string]any)
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid param %q: expected key=value", pair)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid param %q: empty key", pair)
		}
		params[key] = paramValue(strings.TrimSpace(value))
	}
	return params, nil
}

func paramValue(value string) any {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
