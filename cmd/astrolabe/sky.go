package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"astrolabe/internal/chart"
	"astrolabe/internal/config"
	"astrolabe/internal/report"
)

func cycleCmd() *cobra.Command {
	var atValue string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Locate a moment within the solar magnetic cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCycle(atValue, asJSON)
		},
	}
	cmd.Flags().StringVar(&atValue, "at", "", "Target time (RFC 3339 or YYYY-MM-DD, defaults to now)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func runCycle(atValue string, asJSON bool) error {
	at, err := parseAt(atValue, time.Now())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tables := chart.DefaultTables()
	if cfg.Tables != "" {
		loaded, err := config.LoadTables(cfg.Resolve(cfg.Tables))
		if err != nil {
			return err
		}
		if loaded.Cycles != nil {
			tables.Cycles = loaded.Cycles
		}
	}

	out := report.FromCycle(tables.Cycles.PhaseAt(at))
	if asJSON {
		return printJSON(os.Stdout, out)
	}
	printCycle(os.Stdout, out)
	return nil
}

func skyCmd() *cobra.Command {
	var atValue string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "sky",
		Short: "Positions, retrogrades, void-of-course Moon and solar cycle at a moment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSky(atValue, asJSON)
		},
	}
	cmd.Flags().StringVar(&atValue, "at", "", "Target time (RFC 3339 or YYYY-MM-DD, defaults to now)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func runSky(atValue string, asJSON bool) error {
	at, err := parseAt(atValue, time.Now())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	builder, err := newBuilder(cfg)
	if err != nil {
		return err
	}

	r, err := builder.Report(chart.Request{Time: at, Location: cfg.Location})
	if err != nil {
		return err
	}
	out := report.FromReport(r)
	if asJSON {
		return printJSON(os.Stdout, out)
	}

	printChart(os.Stdout, out.Chart)
	fmt.Fprintln(os.Stdout, "\nMotion:")
	for _, m := range out.Retrogrades {
		state := "direct"
		if m.Retrograde {
			state = "retrograde"
		}
		if m.Stationary {
			state += ", stationary"
		}
		fmt.Fprintf(os.Stdout, "  %-8s %7.3f/day  %s\n", m.Body, m.Speed, state)
	}

	fmt.Fprintln(os.Stdout, "")
	switch {
	case out.Void.Void:
		fmt.Fprintf(os.Stdout, "Moon void of course in %s until %s (enters %s)\n", out.Void.Sign, out.Void.Until, out.Void.NextSign)
	case out.Void.Aspect != nil:
		fmt.Fprintf(os.Stdout, "Moon in %s, next aspect: %s %s\n", out.Void.Sign, out.Void.Aspect.Kind, out.Void.Aspect.B)
	default:
		fmt.Fprintf(os.Stdout, "Moon in %s, no aspect or sign change within the scan window\n", out.Void.Sign)
	}

	fmt.Fprintln(os.Stdout, "")
	printCycle(os.Stdout, out.Cycle)
	return nil
}
