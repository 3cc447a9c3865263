// Package slog provides logging decorators for html2txt services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/html2txt"
)

// Ensure LoggingTextExtractor implements html2txt.TextExtractor.
var _ html2txt.TextExtractor = (*LoggingTextExtractor)(nil)

// LoggingTextExtractor wraps a TextExtractor with logging.
type LoggingTextExtractor struct {
	next   html2txt.TextExtractor
	logger *slog.Logger
}

// NewLoggingTextExtractor creates a new LoggingTextExtractor.
func NewLoggingTextExtractor(next html2txt.TextExtractor, logger *slog.Logger) *LoggingTextExtractor {
	return &LoggingTextExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingTextExtractor) Extract(doc *html2txt.SourceDocument) (text *html2txt.ExtractedText, err error) {
	defer func(begin time.Time) {
		var lines int
		if text != nil {
			lines = len(text.Lines)
		}
		e.logger.Info("extract",
			"path", doc.Path,
			"bytes", len(doc.Content),
			"lines", lines,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(doc)
}
