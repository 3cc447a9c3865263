package fs

import (
	"context"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/html2txt"
)

// Ensure SourceStore implements html2txt.SourceStore at compile time.
var _ html2txt.SourceStore = (*SourceStore)(nil)

// SourceStore collects and reads markup files under an input directory.
type SourceStore struct {
	root     string
	encoding string
}

// NewSourceStore creates a SourceStore rooted at root. Documents it reads
// declare the given encoding.
func NewSourceStore(root, encoding string) *SourceStore {
	return &SourceStore{root: filepath.Clean(root), encoding: encoding}
}

// Collect returns matching files in lexicographic path order.
func (s *SourceStore) Collect(ctx context.Context, filter html2txt.SourceFilter) ([]string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, html2txt.Errorf(html2txt.EFILESYSTEM, "input directory %q: %v", s.root, err)
	}
	if !info.IsDir() {
		return nil, html2txt.Errorf(html2txt.EFILESYSTEM, "input path %q is not a directory", s.root)
	}

	var paths []string
	if !filter.Recursive {
		entries, err := os.ReadDir(s.root)
		if err != nil {
			return nil, html2txt.Errorf(html2txt.EFILESYSTEM, "read input directory %q: %v", s.root, err)
		}
		for _, e := range entries {
			if e.IsDir() || !filter.Match(e.Name()) {
				continue
			}
			paths = append(paths, filepath.Join(s.root, e.Name()))
		}
		return paths, nil
	}

	err = filepath.WalkDir(s.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !filter.Match(d.Name()) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, html2txt.Errorf(html2txt.EFILESYSTEM, "walk input directory %q: %v", s.root, err)
	}

	// WalkDir visits "a/b.html" before "a.html"; sort by full path instead.
	slices.Sort(paths)
	return paths, nil
}

// ReadSource reads a file completely. The file is closed before returning,
// including on read failure.
func (s *SourceStore) ReadSource(ctx context.Context, path string) (*html2txt.SourceDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, html2txt.Errorf(html2txt.EDOCUMENT, "%v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, html2txt.Errorf(html2txt.EDOCUMENT, "%v", err)
	}

	return &html2txt.SourceDocument{
		Path:     path,
		Name:     s.relName(path),
		Content:  data,
		Encoding: s.encoding,
		Ext:      strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
	}, nil
}

// relName returns the slash-separated path of p relative to the root.
func (s *SourceStore) relName(p string) string {
	rel, err := filepath.Rel(s.root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(p)
	}
	return filepath.ToSlash(rel)
}
