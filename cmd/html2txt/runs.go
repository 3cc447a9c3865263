package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/html2txt"
)

// listRuns prints the most recent runs, one per line.
func listRuns(ctx context.Context, w io.Writer, runs html2txt.RunReader, limit int) error {
	found, err := runs.FindRuns(ctx, html2txt.RunFilter{Limit: limit})
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return nil
	}
	for _, r := range found {
		fmt.Fprintf(w, "%s  %-7s  %s  processed %d, skipped %d, written %d  %s\n",
			r.ID, r.Mode, r.StartedAt.Local().Format(time.DateTime),
			r.Processed, r.Skipped, r.Written, r.OutputDir)
	}
	return nil
}

// showRun prints one run followed by its documents.
func showRun(ctx context.Context, w io.Writer, runs html2txt.RunReader, id string) error {
	r, err := runs.FindRunByID(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "run %s (%s)\n", r.ID, r.Mode)
	if r.InputDir != "" {
		fmt.Fprintf(w, "input:    %s\n", r.InputDir)
	}
	fmt.Fprintf(w, "output:   %s\n", r.OutputDir)
	fmt.Fprintf(w, "started:  %s\n", r.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "duration: %s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(w, "processed %d, skipped %d, written %d\n", r.Processed, r.Skipped, r.Written)

	for _, d := range r.Documents {
		if d.Status == html2txt.StatusSkipped {
			fmt.Fprintf(w, "  skipped    %s: %s\n", d.Path, d.Error)
			continue
		}
		fmt.Fprintf(w, "  %-10s %s (%d lines, %s)\n", d.Status, d.Path, d.Lines, d.ContentHash)
	}
	return nil
}
