package mock

import (
	"context"

	"github.com/fwojciec/html2txt"
)

var _ html2txt.SourceStore = (*SourceStore)(nil)

// SourceStore is a mock implementation of html2txt.SourceStore.
type SourceStore struct {
	CollectFn    func(ctx context.Context, filter html2txt.SourceFilter) ([]string, error)
	ReadSourceFn func(ctx context.Context, path string) (*html2txt.SourceDocument, error)
}

func (s *SourceStore) Collect(ctx context.Context, filter html2txt.SourceFilter) ([]string, error) {
	return s.CollectFn(ctx, filter)
}

func (s *SourceStore) ReadSource(ctx context.Context, path string) (*html2txt.SourceDocument, error) {
	return s.ReadSourceFn(ctx, path)
}
