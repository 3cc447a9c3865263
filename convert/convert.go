// Package convert orchestrates conversion runs. It coordinates source
// collection, text extraction, line cleaning and output writing, and
// rebuilds consolidated files from existing per-file outputs.
package convert

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/html2txt"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents extracted in parallel
// when Converter.Concurrency is unset. With 1, each source is read and
// extracted before the next one is opened.
const DefaultConcurrency = 1

// Converter runs the conversion and merge pipelines.
type Converter struct {
	Sources   html2txt.SourceStore
	Extractor html2txt.TextExtractor
	Outputs   html2txt.OutputStore

	// Recorder, if set, receives a manifest entry for every run.
	Recorder html2txt.RunRecorder

	Concurrency int
}

// Job describes one run.
type Job struct {
	InputDir string
	Plan     *html2txt.OutputPlan
	Filter   html2txt.SourceFilter
	Rules    html2txt.CleaningRuleSet
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

// extractResult holds the outcome of extracting a single document.
type extractResult struct {
	position int
	path     string
	text     *html2txt.ExtractedText
	err      error
}

// Convert extracts every matching source document and writes the outputs
// the plan asks for. Failing documents are skipped and reported in the
// summary. Zero matching sources is not an error; a run in which every
// document fails returns EDOCUMENT along with the summary.
func (c *Converter) Convert(ctx context.Context, job *Job, progress ProgressFunc) (*html2txt.Summary, error) {
	if job.Plan.MergeOnly {
		return c.Merge(ctx, job, progress)
	}
	startedAt := time.Now().UTC()

	paths, err := c.Sources.Collect(ctx, job.Filter)
	if err != nil {
		return nil, err
	}

	summary := &html2txt.Summary{}
	if len(paths) == 0 {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("no source files matched in %s", job.InputDir))
		return summary, c.record(ctx, job, html2txt.ModeConvert, startedAt, summary)
	}

	results, err := c.extractAll(ctx, paths, progress)
	if err != nil {
		return nil, err
	}

	perFileRules := job.Rules.PerFileRules()
	consolidatedRules := job.Rules.ConsolidatedRules()

	var blocks []*html2txt.Block
	for _, r := range results {
		result := &html2txt.DocumentResult{Path: r.path, Err: r.err}
		summary.Results = append(summary.Results, result)
		if r.err != nil {
			summary.Skipped++
			continue
		}

		text := r.text
		result.Name = text.Name
		summary.Warnings = append(summary.Warnings, documentWarnings(text)...)

		perFile := &html2txt.ExtractedText{
			Path:  text.Path,
			Name:  text.Name,
			Lines: html2txt.CleanLines(text.Lines, perFileRules),
		}
		result.Text = perFile

		if job.Plan.PerFile {
			path, err := c.Outputs.WriteText(ctx, perFile)
			if err != nil {
				return nil, err
			}
			result.OutputPath = path
			summary.Written++
		}
		if job.Plan.Consolidated() {
			blocks = append(blocks, &html2txt.Block{
				Label: text.Name,
				Lines: html2txt.CleanLines(text.Lines, consolidatedRules),
			})
		}
		summary.Processed++
	}

	if summary.Processed == 0 {
		if err := c.record(ctx, job, html2txt.ModeConvert, startedAt, summary); err != nil {
			return nil, err
		}
		return summary, html2txt.Errorf(html2txt.EDOCUMENT, "all %d documents failed", len(paths))
	}

	if job.Plan.Consolidated() {
		if err := c.Outputs.WriteConsolidated(ctx, job.Plan.ConsolidatedPath, blocks, job.Rules.SectionHeaders); err != nil {
			return nil, err
		}
		summary.ConsolidatedPath = job.Plan.ConsolidatedPath
		summary.Written++
	}

	if err := c.record(ctx, job, html2txt.ModeConvert, startedAt, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// extractAll reads and extracts documents concurrently. Results are
// returned in the order of paths regardless of completion order.
func (c *Converter) extractAll(ctx context.Context, paths []string, progress ProgressFunc) ([]extractResult, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(paths)
	resultCh := make(chan extractResult, total)
	var completed atomic.Int64

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, path := range paths {
			g.Go(func() error {
				resultCh <- c.extractOne(gctx, i, path)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]extractResult, total)
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Path:      result.path,
		}
		if result.err != nil {
			event.Type = ProgressFailed
			event.Error = result.err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return results, nil
}

// extractOne reads and extracts a single document.
func (c *Converter) extractOne(ctx context.Context, position int, path string) extractResult {
	result := extractResult{position: position, path: path}

	doc, err := c.Sources.ReadSource(ctx, path)
	if err != nil {
		result.err = err
		return result
	}

	text, err := c.Extractor.Extract(doc)
	if err != nil {
		result.err = err
		return result
	}
	if text.Name == "" {
		text.Name = doc.Name
	}
	result.text = text
	return result
}

// documentWarnings prefixes a document's warnings with its name.
func documentWarnings(text *html2txt.ExtractedText) []string {
	var warnings []string
	if text.HadReplacements {
		warnings = append(warnings, fmt.Sprintf("%s: undecodable bytes replaced with U+FFFD", text.Name))
	}
	for _, w := range text.Warnings {
		warnings = append(warnings, fmt.Sprintf("%s: %s", text.Name, w))
	}
	return warnings
}

// record writes the run manifest when a recorder is configured.
func (c *Converter) record(ctx context.Context, job *Job, mode string, startedAt time.Time, summary *html2txt.Summary) error {
	if c.Recorder == nil {
		return nil
	}

	run := &html2txt.Run{
		Mode:       mode,
		InputDir:   job.InputDir,
		OutputDir:  job.Plan.OutputDir,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Processed:  summary.Processed,
		Skipped:    summary.Skipped,
		Written:    summary.Written,
	}
	for _, r := range summary.Results {
		rec := html2txt.DocumentRecord{Path: r.Path, OutputPath: r.OutputPath}
		if r.Failed() {
			rec.Status = html2txt.StatusSkipped
			rec.Error = html2txt.ErrorMessage(r.Err)
		} else {
			rec.Status = html2txt.StatusConverted
			rec.Lines = len(r.Text.Lines)
			rec.ContentHash = computeHash(r.Text.Text())
		}
		run.Documents = append(run.Documents, rec)
	}

	return c.Recorder.RecordRun(ctx, run)
}

// computeHash returns the hex xxHash of content.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}
