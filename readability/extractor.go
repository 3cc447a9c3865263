// Package readability isolates the main content of a page with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/html2txt"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements html2txt.ContentExtractor at compile time.
var _ html2txt.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to strip page boilerplate.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable article of rawHTML as HTML.
// Local files have no page URL, so relative links stay unresolved.
func (e *Extractor) Extract(rawHTML string) (*html2txt.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, html2txt.Errorf(html2txt.EDOCUMENT, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, html2txt.Errorf(html2txt.EDOCUMENT, "readability: %v", err)
	}

	return &html2txt.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
