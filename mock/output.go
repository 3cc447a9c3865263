package mock

import (
	"context"

	"github.com/fwojciec/html2txt"
)

var _ html2txt.OutputStore = (*OutputStore)(nil)

// OutputStore is a mock implementation of html2txt.OutputStore.
type OutputStore struct {
	WriteTextFn         func(ctx context.Context, text *html2txt.ExtractedText) (string, error)
	WriteConsolidatedFn func(ctx context.Context, path string, blocks []*html2txt.Block, headers bool) error
	ListTextsFn         func(ctx context.Context, exclude string) ([]string, error)
	ReadTextFn          func(ctx context.Context, path string) (*html2txt.ExtractedText, error)
}

func (s *OutputStore) WriteText(ctx context.Context, text *html2txt.ExtractedText) (string, error) {
	return s.WriteTextFn(ctx, text)
}

func (s *OutputStore) WriteConsolidated(ctx context.Context, path string, blocks []*html2txt.Block, headers bool) error {
	return s.WriteConsolidatedFn(ctx, path, blocks, headers)
}

func (s *OutputStore) ListTexts(ctx context.Context, exclude string) ([]string, error) {
	return s.ListTextsFn(ctx, exclude)
}

func (s *OutputStore) ReadText(ctx context.Context, path string) (*html2txt.ExtractedText, error) {
	return s.ReadTextFn(ctx, path)
}
