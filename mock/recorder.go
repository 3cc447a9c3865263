package mock

import (
	"context"

	"github.com/fwojciec/html2txt"
)

var _ html2txt.RunRecorder = (*RunRecorder)(nil)

// RunRecorder is a mock implementation of html2txt.RunRecorder.
type RunRecorder struct {
	RecordRunFn func(ctx context.Context, run *html2txt.Run) error
}

func (r *RunRecorder) RecordRun(ctx context.Context, run *html2txt.Run) error {
	return r.RecordRunFn(ctx, run)
}
