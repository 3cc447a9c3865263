// Package trafilatura isolates the main content of a page with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/html2txt"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements html2txt.ContentExtractor at compile time.
var _ html2txt.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to strip page boilerplate.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Fallback extractors are enabled,
// and links are kept so their targets can be annotated.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
			IncludeLinks:   true,
		},
	}
}

// Extract returns the main content of rawHTML as HTML.
func (e *Extractor) Extract(rawHTML string) (*html2txt.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, html2txt.Errorf(html2txt.EDOCUMENT, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, html2txt.Errorf(html2txt.EDOCUMENT, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &html2txt.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
