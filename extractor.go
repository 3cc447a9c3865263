package html2txt

// TextExtractor converts one markup document into plain text.
type TextExtractor interface {
	// Extract decodes the document with its declared encoding and returns
	// its readable text. Undecodable bytes are replaced rather than
	// rejected; ExtractedText.HadReplacements reports when that happened.
	// Malformed markup degrades to partial text. Errors are EDOCUMENT.
	Extract(doc *SourceDocument) (*ExtractedText, error)
}

// ExtractResult holds the main content isolated from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// ContentExtractor isolates the main content of an HTML page.
type ContentExtractor interface {
	// Extract processes decoded HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
