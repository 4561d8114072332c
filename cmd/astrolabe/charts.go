package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"astrolabe/internal/report"
	"astrolabe/internal/store"
)

type chartFlags struct {
	save    bool
	asJSON  bool
	atValue string
}

func (f *chartFlags) register(cmd *cobra.Command, withAt bool) {
	cmd.Flags().BoolVar(&f.save, "save", false, "Store the result as a snapshot")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the result as JSON")
	if withAt {
		cmd.Flags().StringVar(&f.atValue, "at", "", "Target time (RFC 3339 or YYYY-MM-DD, defaults to now)")
	}
}

// parseAt accepts an RFC 3339 timestamp or a calendar date at UTC midnight.
func parseAt(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: expected RFC 3339 or YYYY-MM-DD", value)
	}
	return t, nil
}

func chartCmd() *cobra.Command {
	var flags chartFlags
	cmd := &cobra.Command{
		Use:   "chart <profile>",
		Short: "Compute a profile's natal chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(args[0], flags)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func runChart(name string, flags chartFlags) error {
	ctx := context.Background()

	db, svc, err := session(ctx)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	p, c, err := svc.Natal(ctx, name)
	if err != nil {
		return err
	}
	out := report.FromChart(c)
	out.Name = p.Name

	if flags.save {
		if err := saveSnapshot(ctx, db, p.Name, store.KindNatal, c.Timestamp, out); err != nil {
			return err
		}
	}
	if flags.asJSON {
		return printJSON(os.Stdout, out)
	}
	printChart(os.Stdout, out)
	return nil
}

func transitsCmd() *cobra.Command {
	var flags chartFlags
	cmd := &cobra.Command{
		Use:   "transits <profile>",
		Short: "Compare the sky at a moment with a profile's natal chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransits(args[0], flags)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func runTransits(name string, flags chartFlags) error {
	ctx := context.Background()

	at, err := parseAt(flags.atValue, time.Now())
	if err != nil {
		return err
	}

	db, svc, err := session(ctx)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	p, tr, err := svc.Transits(ctx, name, at)
	if err != nil {
		return err
	}
	out := report.FromTransit(tr)

	if flags.save {
		if err := saveSnapshot(ctx, db, p.Name, store.KindTransit, at, out); err != nil {
			return err
		}
	}
	if flags.asJSON {
		return printJSON(os.Stdout, out)
	}

	fmt.Fprintf(os.Stdout, "Transits for %s at %s\n", p.Name, out.Chart.Timestamp)
	fmt.Fprintln(os.Stdout, "\nPositions:")
	printPositions(os.Stdout, out.Chart.Positions)
	fmt.Fprintln(os.Stdout, "\nAspects to natal:")
	printAspects(os.Stdout, out.ToNatal)
	fmt.Fprintln(os.Stdout, "\nIngresses since birth:")
	printShifts(os.Stdout, out.Ingresses)
	return nil
}

func progressCmd() *cobra.Command {
	var flags chartFlags
	cmd := &cobra.Command{
		Use:   "progress <profile>",
		Short: "Secondary progression of a profile to a target time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgress(args[0], flags)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func runProgress(name string, flags chartFlags) error {
	ctx := context.Background()

	at, err := parseAt(flags.atValue, time.Now())
	if err != nil {
		return err
	}

	db, svc, err := session(ctx)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	p, prog, err := svc.Progress(ctx, name, at)
	if err != nil {
		return err
	}
	out := report.FromProgression(prog)

	if flags.save {
		if err := saveSnapshot(ctx, db, p.Name, store.KindProgression, at, out); err != nil {
			return err
		}
	}
	if flags.asJSON {
		return printJSON(os.Stdout, out)
	}

	fmt.Fprintf(os.Stdout, "Progression for %s at age %.2f (progressed to %s)\n", p.Name, out.Age, out.ProgressedTime)
	fmt.Fprintf(os.Stdout, "  solar arc %.2f\n", out.SolarArc)
	if out.Ascendant != nil {
		fmt.Fprintf(os.Stdout, "  progressed ascendant %.2f\n", *out.Ascendant)
	}
	fmt.Fprintln(os.Stdout, "\nPositions:")
	printPositions(os.Stdout, out.Positions)
	fmt.Fprintln(os.Stdout, "\nAspects to natal:")
	printAspects(os.Stdout, out.ToNatal)
	return nil
}

func synastryCmd() *cobra.Command {
	var flags chartFlags
	cmd := &cobra.Command{
		Use:   "synastry <first> <second>",
		Short: "Compare the natal charts of two profiles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynastry(args[0], args[1], flags)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func runSynastry(first, second string, flags chartFlags) error {
	ctx := context.Background()

	db, svc, err := session(ctx)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	a, err := svc.Profile(ctx, first)
	if err != nil {
		return err
	}
	b, err := svc.Profile(ctx, second)
	if err != nil {
		return err
	}

	syn, err := svc.Synastry(ctx, a.Name, b.Name)
	if err != nil {
		return err
	}
	out := report.FromSynastry(syn)
	out.First = a.Name
	out.Second = b.Name

	if flags.save {
		if err := saveSnapshot(ctx, db, a.Name, store.KindSynastry, time.Now().UTC(), out); err != nil {
			return err
		}
	}
	if flags.asJSON {
		return printJSON(os.Stdout, out)
	}

	fmt.Fprintf(os.Stdout, "Synastry: %s and %s\n", out.First, out.Second)
	fmt.Fprintln(os.Stdout, "\nAspects:")
	printAspects(os.Stdout, out.Aspects)
	if len(out.DoubleWhammies) > 0 {
		fmt.Fprintln(os.Stdout, "\nDouble whammies:")
		for _, w := range out.DoubleWhammies {
			fmt.Fprintf(os.Stdout, "  %s / %s (%s, %s)\n", w.A, w.B, strings.ToLower(w.Forward), strings.ToLower(w.Reverse))
		}
	}
	if len(out.SecondInFirst) > 0 {
		fmt.Fprintf(os.Stdout, "\n%s in %s's houses:\n", out.Second, out.First)
		for _, o := range out.SecondInFirst {
			fmt.Fprintf(os.Stdout, "  %s in house %d\n", o.Body, o.House)
		}
	}
	if len(out.FirstInSecond) > 0 {
		fmt.Fprintf(os.Stdout, "\n%s in %s's houses:\n", out.First, out.Second)
		for _, o := range out.FirstInSecond {
			fmt.Fprintf(os.Stdout, "  %s in house %d\n", o.Body, o.House)
		}
	}
	return nil
}
