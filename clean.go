package html2txt

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// leadingNumberRe matches a 1-4 digit enumeration at line start with an
// optional "." or ")" suffix. Whether it is stripped depends on what follows.
var leadingNumberRe = regexp.MustCompile(`^[ \t]*\d{1,4}([.)]?)`)

// wordRe matches whitespace-delimited tokens.
var wordRe = regexp.MustCompile(`\S+`)

// navTokens are glyph tokens that always act as navigation buttons when they
// stand alone. Tokens made only of '<' and '>' are handled by isAngleToken.
var navTokens = map[string]bool{
	"«": true, "»": true, "‹": true, "›": true,
	"««": true, "»»": true,
	"◀": true, "▶": true, "▲": true, "▼": true,
}

// CleanLines applies the active rules to each line. Leading-number stripping
// runs before angle-button stripping. Lines are never split or dropped, so
// the result has the same length as the input.
func CleanLines(lines []string, rules LineRules) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if rules.StripLeadingNumbers {
			line = StripLeadingNumber(line)
		}
		if rules.StripAngleButtons {
			line = StripAngleButtons(line)
		}
		out[i] = line
	}
	return out
}

// StripLeadingNumber removes a verse-style enumeration such as "3 ", "12. "
// or "7)" from the start of a line. Digits anywhere else are untouched, and
// numerals that continue into more digits ("12345", "1.5") are kept.
// A line consisting only of the prefix becomes empty.
func StripLeadingNumber(line string) string {
	m := leadingNumberRe.FindStringSubmatchIndex(line)
	if m == nil {
		return line
	}
	rest := line[m[1]:]
	if rest == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(rest)
	hasSuffix := m[3] > m[2]
	switch {
	case r == ' ' || r == '\t':
		return strings.TrimLeft(rest, " \t")
	case hasSuffix && !unicode.IsDigit(r):
		return rest
	}
	return line
}

// StripAngleButtons removes standalone navigation tokens ("<<", ">>", "«",
// "›", ...) bounded by whitespace or line edges. A lone "<" or ">" between
// two ordinary words is a comparison, not a button, and is kept.
// Leading indentation and untouched gaps are preserved; removing a token
// never leaves a double space behind.
func StripAngleButtons(line string) string {
	locs := wordRe.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return line
	}

	tokens := make([]string, len(locs))
	nav := make([]bool, len(locs))
	for i, loc := range locs {
		tokens[i] = line[loc[0]:loc[1]]
		nav[i] = isNavToken(tokens[i])
	}

	keep := make([]bool, len(tokens))
	removed := false
	for i, tok := range tokens {
		keep[i] = !nav[i] || isComparison(tok, i, nav)
		if !keep[i] {
			removed = true
		}
	}
	if !removed {
		return line
	}

	var b strings.Builder
	prev := -1
	for i, loc := range locs {
		if !keep[i] {
			continue
		}
		switch {
		case prev == -1:
			b.WriteString(line[:locs[0][0]])
		case prev == i-1:
			b.WriteString(line[locs[prev][1]:loc[0]])
		default:
			// Reuse the gap that followed the previous kept token.
			b.WriteString(collapseSpaces(line[locs[prev][1]:locs[prev+1][0]]))
		}
		b.WriteString(tokens[i])
		prev = i
	}
	if prev == len(locs)-1 {
		b.WriteString(line[locs[prev][1]:])
	}
	return b.String()
}

// collapseSpaces reduces a gap made only of spaces to a single space.
func collapseSpaces(gap string) string {
	if len(gap) > 1 && strings.Trim(gap, " ") == "" {
		return " "
	}
	return gap
}

// isComparison reports whether a lone "<" or ">" at position i sits between
// two ordinary words.
func isComparison(tok string, i int, nav []bool) bool {
	if tok != "<" && tok != ">" {
		return false
	}
	return i > 0 && i < len(nav)-1 && !nav[i-1] && !nav[i+1]
}

func isNavToken(tok string) bool {
	return navTokens[tok] || isAngleToken(tok)
}

// isAngleToken reports whether tok is 1-3 characters of '<' and '>'.
func isAngleToken(tok string) bool {
	if len(tok) == 0 || len(tok) > 3 {
		return false
	}
	return strings.Trim(tok, "<>") == ""
}
