package html2txt

import "strings"

// SectionHeader returns the delimiter line that labels a block in a
// consolidated output.
func SectionHeader(label string) string {
	return "===== " + label + " ====="
}

// FormatConsolidated concatenates blocks into a consolidated output.
// Each block is optionally preceded by its section header, ends with a
// single newline, and is separated from the next by exactly one blank line.
func FormatConsolidated(blocks []*Block, headers bool) string {
	if len(blocks) == 0 {
		return ""
	}

	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		if headers {
			b.WriteString(SectionHeader(block.Label))
			b.WriteString("\n")
		}
		body := strings.TrimRight(strings.Join(block.Lines, "\n"), "\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}
