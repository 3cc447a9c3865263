package html2txt

import (
	"context"
	"path"
	"strings"
)

// DefaultExtensions are the source extensions collected when none are given.
var DefaultExtensions = []string{"htm", "html"}

// SourceFilter selects candidate source files.
type SourceFilter struct {
	// Extensions are matched case-insensitively, without the leading dot.
	Extensions []string

	// Recursive walks the full subtree instead of direct children only.
	Recursive bool
}

// Match reports whether the file name has one of the filter's extensions.
func (f SourceFilter) Match(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, e := range f.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ParseExtensions parses a comma-separated extension list such as
// "htm, .HTML". Entries are lower-cased, stripped of a leading dot,
// and de-duplicated. Empty entries are ignored.
func ParseExtensions(s string) []string {
	var exts []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		ext := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(part)), ".")
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
	}
	return exts
}

// SourceStore discovers and reads source documents under an input directory.
type SourceStore interface {
	// Collect returns the paths of matching files in lexicographic order.
	// An empty result is not an error. An unreadable input directory
	// returns EFILESYSTEM.
	Collect(ctx context.Context, filter SourceFilter) ([]string, error)

	// ReadSource reads one file completely and closes it before returning.
	// Errors are EDOCUMENT.
	ReadSource(ctx context.Context, path string) (*SourceDocument, error)
}
