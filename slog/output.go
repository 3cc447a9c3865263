package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/html2txt"
)

// Ensure LoggingOutputStore implements html2txt.OutputStore.
var _ html2txt.OutputStore = (*LoggingOutputStore)(nil)

// LoggingOutputStore wraps an OutputStore with logging.
type LoggingOutputStore struct {
	next   html2txt.OutputStore
	logger *slog.Logger
}

// NewLoggingOutputStore creates a new LoggingOutputStore.
func NewLoggingOutputStore(next html2txt.OutputStore, logger *slog.Logger) *LoggingOutputStore {
	return &LoggingOutputStore{next: next, logger: logger}
}

// WriteText delegates to the wrapped store and logs the operation.
func (s *LoggingOutputStore) WriteText(ctx context.Context, text *html2txt.ExtractedText) (path string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("write text",
			"name", text.Name,
			"path", path,
			"lines", len(text.Lines),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteText(ctx, text)
}

// WriteConsolidated delegates to the wrapped store and logs the operation.
func (s *LoggingOutputStore) WriteConsolidated(ctx context.Context, path string, blocks []*html2txt.Block, headers bool) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("write consolidated",
			"path", path,
			"blocks", len(blocks),
			"headers", headers,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteConsolidated(ctx, path, blocks, headers)
}

// ListTexts delegates to the wrapped store and logs the operation.
func (s *LoggingOutputStore) ListTexts(ctx context.Context, exclude string) (paths []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list texts",
			"exclude", exclude,
			"count", len(paths),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListTexts(ctx, exclude)
}

// ReadText delegates to the wrapped store.
func (s *LoggingOutputStore) ReadText(ctx context.Context, path string) (*html2txt.ExtractedText, error) {
	return s.next.ReadText(ctx, path)
}
