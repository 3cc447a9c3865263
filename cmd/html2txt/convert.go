package main

import (
	"fmt"

	"github.com/fwojciec/html2txt"
	"github.com/fwojciec/html2txt/convert"
)

// Run executes the conversion or merge and prints the run summary.
func (c *CLI) Run(deps *Dependencies) error {
	progress := func(event convert.ProgressEvent) {
		if event.Type == convert.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", event.Path, html2txt.ErrorMessage(event.Error))
		}
	}

	summary, err := deps.Converter.Convert(deps.Ctx, deps.Job, progress)
	if summary != nil {
		for _, w := range summary.Warnings {
			fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
		}
	}
	if err != nil {
		return err
	}

	plan := deps.Job.Plan
	switch {
	case plan.MergeOnly:
		fmt.Fprintf(deps.Stdout, "Merged %d file(s) → %s\n", summary.Processed, summary.ConsolidatedPath)
	case summary.Processed > 0 && plan.PerFile:
		fmt.Fprintf(deps.Stdout, "Converted %d file(s) → %s\n", summary.Processed, plan.OutputDir)
		if summary.ConsolidatedPath != "" {
			fmt.Fprintf(deps.Stdout, "Consolidated → %s\n", summary.ConsolidatedPath)
		}
	case summary.Processed > 0:
		fmt.Fprintf(deps.Stdout, "Converted %d file(s) → %s\n", summary.Processed, summary.ConsolidatedPath)
	}
	fmt.Fprintf(deps.Stdout, "processed %d, skipped %d, written %d\n",
		summary.Processed, summary.Skipped, summary.Written)
	if skipped := summary.SkippedResults(); len(skipped) > 0 {
		fmt.Fprintln(deps.Stdout, "skipped:")
		for _, r := range skipped {
			fmt.Fprintf(deps.Stdout, "  %s: %s\n", r.Path, html2txt.ErrorMessage(r.Err))
		}
	}
	return nil
}
