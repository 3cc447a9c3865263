package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/html2txt"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ html2txt.RunRecorder = (*RunService)(nil)
	_ html2txt.RunReader   = (*RunService)(nil)
)

// RunService records conversion runs in SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// RecordRun stores a run and its documents in a single transaction.
// It assigns the run a new ID.
func (s *RunService) RecordRun(ctx context.Context, run *html2txt.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = run.StartedAt
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, mode, input_dir, output_dir, started_at, finished_at, processed, skipped, written)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Mode, run.InputDir, run.OutputDir,
		run.StartedAt.UTC().Format(timeFormat), run.FinishedAt.UTC().Format(timeFormat),
		run.Processed, run.Skipped, run.Written)
	if err != nil {
		return err
	}

	for i, doc := range run.Documents {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_documents (run_id, position, path, output_path, content_hash, lines, status, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, doc.Path, doc.OutputPath, doc.ContentHash, doc.Lines, doc.Status, doc.Error)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run and its documents.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*html2txt.Run, error) {
	var run html2txt.Run
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, mode, input_dir, output_dir, started_at, finished_at, processed, skipped, written
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Mode, &run.InputDir, &run.OutputDir, &startedAt, &finishedAt,
		&run.Processed, &run.Skipped, &run.Written)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, html2txt.Errorf(html2txt.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	if run.Documents, err = s.findDocuments(ctx, run.ID); err != nil {
		return nil, err
	}
	return &run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
// Documents are not loaded; use FindRunByID for the full record.
func (s *RunService) FindRuns(ctx context.Context, filter html2txt.RunFilter) ([]*html2txt.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, mode, input_dir, output_dir, started_at, finished_at, processed, skipped, written FROM runs WHERE 1=1")

	if filter.Mode != nil {
		query.WriteString(" AND mode = ?")
		args = append(args, *filter.Mode)
	}
	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*html2txt.Run
	for rows.Next() {
		var run html2txt.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.Mode, &run.InputDir, &run.OutputDir, &startedAt, &finishedAt,
			&run.Processed, &run.Skipped, &run.Written); err != nil {
			return nil, err
		}
		if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

func (s *RunService) findDocuments(ctx context.Context, runID string) ([]html2txt.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, output_path, content_hash, lines, status, error
		FROM run_documents
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []html2txt.DocumentRecord
	for rows.Next() {
		var doc html2txt.DocumentRecord
		if err := rows.Scan(&doc.Path, &doc.OutputPath, &doc.ContentHash, &doc.Lines, &doc.Status, &doc.Error); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
