package mock

import "github.com/fwojciec/html2txt"

var _ html2txt.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of html2txt.TextExtractor.
type TextExtractor struct {
	ExtractFn func(doc *html2txt.SourceDocument) (*html2txt.ExtractedText, error)
}

func (e *TextExtractor) Extract(doc *html2txt.SourceDocument) (*html2txt.ExtractedText, error) {
	return e.ExtractFn(doc)
}

var _ html2txt.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of html2txt.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*html2txt.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*html2txt.ExtractResult, error) {
	return e.ExtractFn(html)
}
