package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"astrolabe/internal/report"
	"astrolabe/internal/store"
)

func printJSON(out io.Writer, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(out, string(payload))
	return nil
}

func saveSnapshot(ctx context.Context, db store.Store, profile string, kind store.SnapshotKind, at time.Time, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	id, err := db.SaveSnapshot(ctx, store.SnapshotInput{
		Profile: profile,
		Kind:    kind,
		At:      at,
		Payload: payload,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved %s snapshot %d for %s.\n", kind, id, profile)
	return nil
}

func printPositions(out io.Writer, positions []report.Position) {
	for _, p := range positions {
		line := fmt.Sprintf("  %-10s %6.2f  %5.2f %s", p.Body, p.Longitude, p.Degree, p.Sign)
		if p.House > 0 {
			line += fmt.Sprintf("  house %d", p.House)
		}
		fmt.Fprintln(out, line)
	}
}

func printAspects(out io.Writer, aspects []report.Aspect) {
	if len(aspects) == 0 {
		fmt.Fprintln(out, "  none")
		return
	}
	for _, a := range aspects {
		exact := ""
		if a.Exact {
			exact = " (exact)"
		}
		fmt.Fprintf(out, "  %s %s %s  orb %.2f%s\n", a.A, strings.ToLower(a.Kind), a.B, a.Orb, exact)
	}
}

func printChart(out io.Writer, c report.Chart) {
	header := c.Timestamp
	if c.Name != "" {
		header = fmt.Sprintf("%s, %s", c.Name, c.Timestamp)
	}
	fmt.Fprintf(out, "%s (%s, %s)\n", header, c.Observer, c.Zodiac)

	fmt.Fprintln(out, "\nPositions:")
	printPositions(out, c.Positions)

	if c.Angles != nil {
		fmt.Fprintln(out, "\nAngles:")
		fmt.Fprintf(out, "  Ascendant  %6.2f\n  Midheaven  %6.2f\n", c.Angles.Ascendant, c.Angles.Midheaven)
	}

	fmt.Fprintln(out, "\nAspects:")
	printAspects(out, c.Aspects)

	if len(c.Patterns) > 0 {
		fmt.Fprintln(out, "\nPatterns:")
		for _, p := range c.Patterns {
			line := fmt.Sprintf("  %s: %s", p.Kind, strings.Join(p.Bodies, ", "))
			if p.Apex != "" {
				line += fmt.Sprintf(" (apex %s)", p.Apex)
			}
			fmt.Fprintln(out, line)
		}
	}

	fmt.Fprintf(out, "\nDignity: %s (score %d)\n", c.Dignity.Text, c.Dignity.Score)
	for _, r := range c.Receptions {
		fmt.Fprintf(out, "  mutual reception: %s in %s, %s in %s\n", r.A, r.SignA, r.B, r.SignB)
	}
}

func printShifts(out io.Writer, shifts []report.Shift) {
	if len(shifts) == 0 {
		fmt.Fprintln(out, "  none")
		return
	}
	for _, s := range shifts {
		fmt.Fprintf(out, "  %s: %s -> %s (%s, %.2f)\n", s.Body, s.From, s.To, s.Direction, s.Delta)
	}
}

func printCycle(out io.Writer, c report.Cycle) {
	status := "estimated"
	if c.Observed {
		status = "observed"
	}
	trend := "descending"
	if c.Ascending {
		trend = "ascending"
	}
	fmt.Fprintf(out, "Solar cycle %d (%s, %s to %s)\n", c.Number, status, c.Start, c.End)
	fmt.Fprintf(out, "  phase %.2f, %s\n", c.Phase, trend)
	if c.InReversal {
		fmt.Fprintf(out, "  in polar field reversal (%s to %s)\n", c.FlipStart, c.FlipEnd)
	}
}
