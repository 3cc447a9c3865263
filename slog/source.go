package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/html2txt"
)

// Ensure LoggingSourceStore implements html2txt.SourceStore.
var _ html2txt.SourceStore = (*LoggingSourceStore)(nil)

// LoggingSourceStore wraps a SourceStore with logging.
type LoggingSourceStore struct {
	next   html2txt.SourceStore
	logger *slog.Logger
}

// NewLoggingSourceStore creates a new LoggingSourceStore.
func NewLoggingSourceStore(next html2txt.SourceStore, logger *slog.Logger) *LoggingSourceStore {
	return &LoggingSourceStore{next: next, logger: logger}
}

// Collect delegates to the wrapped store and logs the operation.
func (s *LoggingSourceStore) Collect(ctx context.Context, filter html2txt.SourceFilter) (paths []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("collect sources",
			"extensions", filter.Extensions,
			"recursive", filter.Recursive,
			"count", len(paths),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Collect(ctx, filter)
}

// ReadSource delegates to the wrapped store.
func (s *LoggingSourceStore) ReadSource(ctx context.Context, path string) (*html2txt.SourceDocument, error) {
	return s.next.ReadSource(ctx, path)
}
