package html2txt

import "context"

// DefaultConsolidatedName is the file name of the consolidated output when
// no explicit path is given.
const DefaultConsolidatedName = "all.txt"

// Block is one labeled section of a consolidated output.
type Block struct {
	Label string
	Lines []string
}

// OutputStore persists text outputs under an output directory.
// All writes replace whole files, so repeated runs are idempotent.
type OutputStore interface {
	// WriteText writes one per-file output and returns its path.
	// Write failures return EFILESYSTEM.
	WriteText(ctx context.Context, text *ExtractedText) (string, error)

	// WriteConsolidated writes the blocks to a single file at path.
	WriteConsolidated(ctx context.Context, path string, blocks []*Block, headers bool) error

	// ListTexts returns the .txt files directly under the output directory
	// in lexicographic order, excluding the file at exclude.
	ListTexts(ctx context.Context, exclude string) ([]string, error)

	// ReadText reads a previously written text output.
	ReadText(ctx context.Context, path string) (*ExtractedText, error)
}
