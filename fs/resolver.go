// Package fs provides file-based discovery and storage for html2txt.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/html2txt"
)

// Destination scopes used when no explicit output directory is given.
const (
	// ScopeOutputs writes under <root>/outputs/processed/<name>_txt.
	ScopeOutputs = "outputs"

	// ScopeSibling writes to <parent of input>/<name>_txt.
	ScopeSibling = "sibling"
)

// DefaultRootMarkers identify a repository root.
var DefaultRootMarkers = []string{"outputs", ".git"}

// ResolveRoot walks upward from cwd and returns the first directory that
// contains one of the markers. It reports false when the filesystem root
// is reached without a match.
func ResolveRoot(cwd string, markers []string) (string, bool) {
	dir := filepath.Clean(cwd)
	for {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DatasetName derives the dataset name from an input directory:
// its base name with a trailing "_html" or "_htm" removed.
func DatasetName(inputDir string) string {
	base := filepath.Base(filepath.Clean(inputDir))
	for _, suffix := range []string{"_html", "_htm"} {
		if trimmed := strings.TrimSuffix(base, suffix); trimmed != base && trimmed != "" {
			return trimmed
		}
	}
	return base
}

// OutputDirOptions are the inputs of output directory resolution.
type OutputDirOptions struct {
	// OutputDir is the explicit --output-dir flag, used verbatim when set.
	OutputDir string

	// DestScope is ScopeOutputs (default) or ScopeSibling.
	DestScope string

	InputDir string

	// WorkDir resolves relative paths and starts the root search.
	// Empty means the process working directory.
	WorkDir string

	// Markers defaults to DefaultRootMarkers.
	Markers []string
}

// OutputDir computes the absolute output directory without touching the
// filesystem beyond the root marker search. When no root is found the
// parent of the input directory stands in for it.
func OutputDir(opts OutputDirOptions) (string, error) {
	wd := opts.WorkDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return "", html2txt.Errorf(html2txt.EFILESYSTEM, "working directory: %v", err)
		}
	}

	if opts.OutputDir != "" {
		return absPath(wd, opts.OutputDir), nil
	}
	if opts.InputDir == "" {
		return "", html2txt.Errorf(html2txt.ECONFIG, "input directory required to derive an output directory")
	}

	in := absPath(wd, opts.InputDir)
	name := DatasetName(in) + "_txt"

	switch opts.DestScope {
	case "", ScopeOutputs:
		markers := opts.Markers
		if markers == nil {
			markers = DefaultRootMarkers
		}
		root, ok := ResolveRoot(wd, markers)
		if !ok {
			root = filepath.Dir(in)
		}
		return filepath.Join(root, "outputs", "processed", name), nil
	case ScopeSibling:
		return filepath.Join(filepath.Dir(in), name), nil
	default:
		return "", html2txt.Errorf(html2txt.ECONFIG, "unknown destination scope %q", opts.DestScope)
	}
}

// ResolveOutputDir computes the output directory and creates it with its
// parents. Creation failures return EFILESYSTEM.
func ResolveOutputDir(opts OutputDirOptions) (string, error) {
	dir, err := OutputDir(opts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", html2txt.Errorf(html2txt.EFILESYSTEM, "create output directory %q: %v", dir, err)
	}
	return dir, nil
}

func absPath(wd, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(wd, p)
}
