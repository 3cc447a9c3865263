package html2txt

import (
	"context"
	"time"
)

// Run modes recorded in the manifest.
const (
	ModeConvert = "convert"
	ModeMerge   = "merge"
)

// Document statuses recorded in the manifest.
const (
	StatusConverted = "converted"
	StatusSkipped   = "skipped"
)

// Run describes one invocation for the run manifest.
type Run struct {
	ID         string           `json:"id"`
	Mode       string           `json:"mode"`
	InputDir   string           `json:"inputDir"`
	OutputDir  string           `json:"outputDir"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Processed  int              `json:"processed"`
	Skipped    int              `json:"skipped"`
	Written    int              `json:"written"`
	Documents  []DocumentRecord `json:"documents"`
}

// DocumentRecord describes one processed document in a run.
type DocumentRecord struct {
	Path        string `json:"path"`
	OutputPath  string `json:"outputPath"`
	ContentHash string `json:"contentHash"`
	Lines       int    `json:"lines"`
	Status      string `json:"status"`
	Error       string `json:"error"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.OutputDir == "" {
		return Errorf(ECONFIG, "run output directory required")
	}
	if r.Mode != ModeConvert && r.Mode != ModeMerge {
		return Errorf(ECONFIG, "invalid run mode %q", r.Mode)
	}
	return nil
}

// RunRecorder persists a run and its documents.
// RecordRun assigns the run ID.
type RunRecorder interface {
	RecordRun(ctx context.Context, run *Run) error
}

// RunReader reads recorded runs back from the manifest.
type RunReader interface {
	// FindRunByID returns a run with its documents. Returns ENOTFOUND if
	// no run has the ID.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns returns runs without their documents, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter selects runs from the manifest, newest first.
type RunFilter struct {
	Mode   *string
	Limit  int
	Offset int
}
