// Package goquery implements HTML text extraction using goquery and
// golang.org/x/net/html.
package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/html2txt"
	"github.com/fwojciec/html2txt/charset"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements html2txt.TextExtractor at compile time.
var _ html2txt.TextExtractor = (*Extractor)(nil)

// DefaultDropTags are elements whose content is dropped entirely.
// They usually hold footnote markers and verse superscripts.
var DefaultDropTags = []string{"sup", "sub"}

// skipSelector matches elements that never carry readable text.
const skipSelector = "script, style, noscript, template"

// Extractor converts HTML documents into plain text lines.
type Extractor struct {
	includeURLs bool
	dropTags    []string
	content     html2txt.ContentExtractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithIncludeURLs appends " (href)" after the visible text of each link.
func WithIncludeURLs(include bool) Option {
	return func(e *Extractor) {
		e.includeURLs = include
	}
}

// WithDropTags sets the elements whose content is dropped.
// An empty list keeps everything.
func WithDropTags(tags []string) Option {
	return func(e *Extractor) {
		e.dropTags = ParseTags(strings.Join(tags, ","))
	}
}

// WithContentExtractor isolates the main content before extraction.
func WithContentExtractor(c html2txt.ContentExtractor) Option {
	return func(e *Extractor) {
		e.content = c
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{dropTags: DefaultDropTags}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParseTags parses a comma-separated list of element names.
// Names that are not plain tag names are ignored.
func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tagNameRe.MatchString(tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

var tagNameRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Extract decodes the document and returns its readable text.
func (e *Extractor) Extract(doc *html2txt.SourceDocument) (*html2txt.ExtractedText, error) {
	if doc == nil {
		return nil, html2txt.Errorf(html2txt.EDOCUMENT, "nil document")
	}

	decoded, err := charset.Decode(doc.Content, doc.Encoding)
	if err != nil {
		return nil, err
	}

	text := &html2txt.ExtractedText{
		Path:            doc.Path,
		Name:            doc.Name,
		HadReplacements: decoded.HadReplacements,
	}

	markup := decoded.Text
	if e.content != nil {
		result, err := e.content.Extract(markup)
		switch {
		case err != nil:
			text.Warnings = append(text.Warnings, fmt.Sprintf("main content extraction failed, using full page: %v", err))
		case result == nil || strings.TrimSpace(result.ContentHTML) == "":
			text.Warnings = append(text.Warnings, "main content extraction found nothing, using full page")
		default:
			markup = result.ContentHTML
		}
	}

	text.Lines, err = e.ExtractLines(markup)
	if err != nil {
		return nil, err
	}
	return text, nil
}

// ExtractLines converts decoded HTML into text lines.
// Block elements are separated by a blank line, list items become
// bulleted lines, table cells are tab separated, and pre content is
// kept verbatim.
func (e *Extractor) ExtractLines(markup string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, html2txt.Errorf(html2txt.EDOCUMENT, "failed to parse HTML: %v", err)
	}

	doc.Find(skipSelector).Remove()
	if len(e.dropTags) > 0 {
		doc.Find(strings.Join(e.dropTags, ", ")).Remove()
	}

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	w := &walker{includeURLs: e.includeURLs}
	for _, n := range root.Nodes {
		w.walk(n)
	}
	return w.lines(), nil
}

var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Address: true, atom.Aside: true,
	atom.Blockquote: true, atom.Main: true, atom.Nav: true, atom.Figure: true,
	atom.Figcaption: true, atom.Table: true, atom.Dl: true, atom.Dt: true,
	atom.Dd: true, atom.Hr: true, atom.Form: true, atom.Fieldset: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

var spaceRe = regexp.MustCompile(`\s+`)

type anchor struct {
	href  string
	start int
}

// walker accumulates text while walking the DOM in document order.
type walker struct {
	buf         strings.Builder
	includeURLs bool
	listLevel   int
	cellIndex   int
	preDepth    int
	anchors     []anchor

	// urlEnd is the buffer length right after the last link annotation.
	urlEnd int
}

func (w *walker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		w.open(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
		w.close(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *walker) open(n *html.Node) {
	switch {
	case n.DataAtom == atom.Br:
		w.ensureNewlines(1)
	case n.DataAtom == atom.Ul || n.DataAtom == atom.Ol:
		w.listLevel++
		w.ensureNewlines(2)
	case n.DataAtom == atom.Li:
		w.ensureNewlines(1)
		w.buf.WriteString(strings.Repeat("  ", max(0, w.listLevel-1)))
		w.buf.WriteString("• ")
	case n.DataAtom == atom.Tr:
		w.ensureNewlines(1)
		w.cellIndex = 0
	case n.DataAtom == atom.Td || n.DataAtom == atom.Th:
		if w.cellIndex > 0 {
			w.buf.WriteString("\t")
		}
		w.cellIndex++
	case n.DataAtom == atom.Pre:
		w.ensureNewlines(2)
		w.preDepth++
	case n.DataAtom == atom.A:
		w.anchors = append(w.anchors, anchor{href: attr(n, "href"), start: w.buf.Len()})
	case blockAtoms[n.DataAtom]:
		w.ensureNewlines(2)
	}
}

func (w *walker) close(n *html.Node) {
	switch {
	case n.DataAtom == atom.Ul || n.DataAtom == atom.Ol:
		w.listLevel = max(0, w.listLevel-1)
		w.ensureNewlines(2)
	case n.DataAtom == atom.Li || n.DataAtom == atom.Tr:
		w.ensureNewlines(1)
	case n.DataAtom == atom.Pre:
		w.preDepth = max(0, w.preDepth-1)
		w.ensureNewlines(2)
	case n.DataAtom == atom.A:
		if len(w.anchors) == 0 {
			return
		}
		a := w.anchors[len(w.anchors)-1]
		w.anchors = w.anchors[:len(w.anchors)-1]
		if w.includeURLs && isAnnotatable(a.href) && strings.TrimSpace(w.buf.String()[a.start:]) != "" {
			w.buf.WriteString(" (" + a.href + ")")
			w.urlEnd = w.buf.Len()
		}
	case blockAtoms[n.DataAtom]:
		w.ensureNewlines(2)
	}
}

func (w *walker) text(data string) {
	if w.preDepth > 0 {
		w.buf.WriteString(data)
		return
	}

	s := strings.ReplaceAll(data, "\u00a0", " ")
	s = spaceRe.ReplaceAllString(s, " ")
	switch w.lastByte() {
	case 0, '\n', ' ', '\t':
		s = strings.TrimLeft(s, " ")
	}
	if w.urlEnd > 0 && w.buf.Len() == w.urlEnd && needsSpace(s) {
		w.buf.WriteByte(' ')
	}
	w.buf.WriteString(s)
}

func (w *walker) lastByte() byte {
	s := w.buf.String()
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}

// ensureNewlines makes the buffer end with at least n newlines.
func (w *walker) ensureNewlines(n int) {
	s := w.buf.String()
	have := len(s) - len(strings.TrimRight(s, "\n"))
	for ; have < n; have++ {
		w.buf.WriteByte('\n')
	}
}

// lines trims trailing whitespace, collapses runs of blank lines into one,
// and drops leading and trailing blank lines.
func (w *walker) lines() []string {
	var out []string
	blank := false
	for _, line := range strings.Split(w.buf.String(), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return out
}

// needsSpace reports whether text following a link annotation must be
// separated from it.
func needsSpace(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsRune(" .,;:!?)]", rune(s[0]))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// isAnnotatable reports whether a link target is worth appending to its text.
// Fragment-only and javascript: links point nowhere useful in plain text.
func isAnnotatable(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(href), "javascript:")
}
