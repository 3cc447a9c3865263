package html2txt

import "path/filepath"

// PlanOptions are the invocation flags that decide what a run writes.
type PlanOptions struct {
	// OutputDir is the resolved output directory.
	OutputDir string

	// SingleFile is the explicit consolidated output path, if any.
	SingleFile string

	SingleOnly bool
	MergeOnly  bool
}

// OutputPlan decides which outputs a run produces.
// PerFile and SingleOnly are never both in effect: a plan that writes
// per-file outputs always has PerFile set and SingleOnly-derived plans
// never do.
type OutputPlan struct {
	OutputDir string

	// ConsolidatedPath is the consolidated file destination,
	// empty when no consolidated file is written.
	ConsolidatedPath string

	// PerFile enables one output file per source document.
	PerFile bool

	// MergeOnly skips extraction and consolidates existing outputs.
	MergeOnly bool
}

// Consolidated reports whether the plan writes a consolidated file.
func (p *OutputPlan) Consolidated() bool {
	return p.ConsolidatedPath != ""
}

// NewOutputPlan derives the output plan from invocation flags.
// It returns ECONFIG for contradictory or empty combinations.
func NewOutputPlan(opts PlanOptions) (*OutputPlan, error) {
	if opts.OutputDir == "" {
		return nil, Errorf(ECONFIG, "output directory required")
	}
	if opts.SingleOnly && opts.MergeOnly {
		return nil, Errorf(ECONFIG, "--single-only and --merge-only cannot be combined")
	}

	plan := &OutputPlan{
		OutputDir: filepath.Clean(opts.OutputDir),
		MergeOnly: opts.MergeOnly,
	}

	single := opts.SingleFile
	if single == "" && (opts.SingleOnly || opts.MergeOnly) {
		single = filepath.Join(plan.OutputDir, DefaultConsolidatedName)
	}
	if single != "" {
		plan.ConsolidatedPath = filepath.Clean(single)
	}
	plan.PerFile = !opts.SingleOnly && !opts.MergeOnly

	if !plan.PerFile && !plan.Consolidated() {
		return nil, Errorf(ECONFIG, "nothing to write: no per-file or consolidated output requested")
	}
	return plan, nil
}
