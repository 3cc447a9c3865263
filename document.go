package html2txt

import "strings"

// SourceDocument is one markup file read from the input directory.
// It is read once by a TextExtractor and never mutated.
type SourceDocument struct {
	// Path is the absolute path of the file.
	Path string

	// Name is the slash-separated path relative to the input directory.
	// It labels section headers and determines the per-file output path.
	Name string

	// Content is the raw, undecoded file content.
	Content []byte

	// Encoding is the declared character encoding, e.g. "utf-8".
	Encoding string

	// Ext is the lower-cased extension without the leading dot.
	Ext string
}

// ExtractedText is the plain text derived from one document.
type ExtractedText struct {
	// Path is the originating file.
	Path string

	// Name is the relative label used for section headers.
	Name string

	// Lines holds the text, one entry per line, without line terminators.
	Lines []string

	// HadReplacements reports whether undecodable bytes were replaced
	// while decoding the source.
	HadReplacements bool

	// Warnings are non-fatal conditions met while extracting.
	Warnings []string
}

// Text joins the lines into a newline-terminated blob.
// An empty document produces an empty string.
func (t *ExtractedText) Text() string {
	if len(t.Lines) == 0 {
		return ""
	}
	return strings.Join(t.Lines, "\n") + "\n"
}

// SplitLines splits a text blob into lines, accepting both \n and \r\n
// terminators. A trailing terminator does not produce an empty last line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// DocumentResult is the outcome of processing a single document.
// Exactly one of Text and Err is set.
type DocumentResult struct {
	Path       string
	Name       string
	Text       *ExtractedText
	OutputPath string
	Err        error
}

// Failed reports whether the document was skipped.
func (r *DocumentResult) Failed() bool {
	return r.Err != nil
}

// Summary reports the outcome of a run.
type Summary struct {
	// Results holds one entry per document, in processing order.
	Results []*DocumentResult

	// Processed is the number of documents converted successfully.
	Processed int

	// Skipped is the number of documents that failed and were skipped.
	Skipped int

	// Written is the number of files written, including the consolidated file.
	Written int

	// ConsolidatedPath is set when a consolidated file was written.
	ConsolidatedPath string

	// Warnings are non-fatal conditions worth reporting to the user.
	Warnings []string
}

// SkippedResults returns the results of failed documents.
func (s *Summary) SkippedResults() []*DocumentResult {
	var skipped []*DocumentResult
	for _, r := range s.Results {
		if r.Failed() {
			skipped = append(skipped, r)
		}
	}
	return skipped
}
