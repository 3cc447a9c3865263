package convert

import (
	"context"
	"time"

	"github.com/fwojciec/html2txt"
)

// Merge rebuilds the consolidated file from the per-file outputs already
// present in the output directory, without reading any source document.
// The consolidated destination is excluded from its own inputs, so
// repeated merges produce identical files. An output directory without
// text files returns ECONFIG.
func (c *Converter) Merge(ctx context.Context, job *Job, progress ProgressFunc) (*html2txt.Summary, error) {
	if !job.Plan.Consolidated() {
		return nil, html2txt.Errorf(html2txt.ECONFIG, "merge requires a consolidated output path")
	}
	startedAt := time.Now().UTC()

	paths, err := c.Outputs.ListTexts(ctx, job.Plan.ConsolidatedPath)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, html2txt.Errorf(html2txt.ECONFIG, "no .txt files to merge in %s", job.Plan.OutputDir)
	}

	total := len(paths)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	rules := job.Rules.MergeRules()
	summary := &html2txt.Summary{}
	var blocks []*html2txt.Block
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := &html2txt.DocumentResult{Path: path}
		summary.Results = append(summary.Results, result)

		text, err := c.Outputs.ReadText(ctx, path)
		if err != nil {
			result.Err = err
			summary.Skipped++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, Path: path, Error: err})
			}
			continue
		}

		result.Name = text.Name
		result.OutputPath = path
		result.Text = &html2txt.ExtractedText{
			Path:  path,
			Name:  text.Name,
			Lines: html2txt.CleanLines(text.Lines, rules),
		}
		summary.Warnings = append(summary.Warnings, documentWarnings(text)...)
		blocks = append(blocks, &html2txt.Block{Label: text.Name, Lines: result.Text.Lines})
		summary.Processed++

		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, Path: path})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if summary.Processed == 0 {
		if err := c.record(ctx, job, html2txt.ModeMerge, startedAt, summary); err != nil {
			return nil, err
		}
		return summary, html2txt.Errorf(html2txt.EDOCUMENT, "all %d outputs failed to read", total)
	}

	if err := c.Outputs.WriteConsolidated(ctx, job.Plan.ConsolidatedPath, blocks, job.Rules.SectionHeaders); err != nil {
		return nil, err
	}
	summary.ConsolidatedPath = job.Plan.ConsolidatedPath
	summary.Written = 1

	if err := c.record(ctx, job, html2txt.ModeMerge, startedAt, summary); err != nil {
		return nil, err
	}
	return summary, nil
}
