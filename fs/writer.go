package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/html2txt"
	"github.com/fwojciec/html2txt/charset"
)

// Ensure OutputStore implements html2txt.OutputStore at compile time.
var _ html2txt.OutputStore = (*OutputStore)(nil)

// OutputStore writes text outputs under a directory.
type OutputStore struct {
	dir string
}

// NewOutputStore creates an OutputStore that writes under dir.
func NewOutputStore(dir string) *OutputStore {
	return &OutputStore{dir: filepath.Clean(dir)}
}

// OutputPath maps a source name such as "book/ch01.html" to its per-file
// output path "<dir>/book/ch01.txt".
func (s *OutputStore) OutputPath(name string) string {
	rel := filepath.FromSlash(name)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".txt"
	return filepath.Join(s.dir, rel)
}

// WriteText writes the text of one document, replacing any existing file.
func (s *OutputStore) WriteText(ctx context.Context, text *html2txt.ExtractedText) (string, error) {
	name := text.Name
	if name == "" {
		name = filepath.Base(text.Path)
	}
	path := s.OutputPath(name)
	if err := writeFile(path, []byte(text.Text())); err != nil {
		return "", err
	}
	return path, nil
}

// WriteConsolidated writes all blocks to a single file at path.
func (s *OutputStore) WriteConsolidated(ctx context.Context, path string, blocks []*html2txt.Block, headers bool) error {
	return writeFile(path, []byte(html2txt.FormatConsolidated(blocks, headers)))
}

// ListTexts returns the .txt files directly under the output directory in
// lexicographic order. A missing directory has no texts.
func (s *OutputStore) ListTexts(ctx context.Context, exclude string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, html2txt.Errorf(html2txt.EFILESYSTEM, "read output directory %q: %v", s.dir, err)
	}

	if exclude != "" {
		exclude = filepath.Clean(exclude)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".txt" {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if path == exclude {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadText reads a previously written output. Invalid UTF-8 is replaced.
func (s *OutputStore) ReadText(ctx context.Context, path string) (*html2txt.ExtractedText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, html2txt.Errorf(html2txt.EDOCUMENT, "read %s: %v", path, err)
	}

	decoded, err := charset.Decode(data, charset.DefaultEncoding)
	if err != nil {
		return nil, err
	}

	return &html2txt.ExtractedText{
		Path:            path,
		Name:            filepath.Base(path),
		Lines:           html2txt.SplitLines(decoded.Text),
		HadReplacements: decoded.HadReplacements,
	}, nil
}

// writeFile replaces path with data. Content goes to a temporary file in
// the same directory first and is renamed over the destination, so readers
// never observe a partial file.
func writeFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return html2txt.Errorf(html2txt.EFILESYSTEM, "create directory %q: %v", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return html2txt.Errorf(html2txt.EFILESYSTEM, "write %s: %v", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return html2txt.Errorf(html2txt.EFILESYSTEM, "write %s: %v", path, err)
	}
	if err = tmp.Close(); err != nil {
		return html2txt.Errorf(html2txt.EFILESYSTEM, "write %s: %v", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return html2txt.Errorf(html2txt.EFILESYSTEM, "write %s: %v", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return html2txt.Errorf(html2txt.EFILESYSTEM, "write %s: %v", path, err)
	}
	return nil
}
