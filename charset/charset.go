// Package charset decodes source documents using golang.org/x/text,
// replacing undecodable byte sequences instead of failing.
package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/html2txt"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no encoding is declared.
const DefaultEncoding = "utf-8"

// Result is decoded text plus whether any replacement characters
// had to be substituted for invalid input.
type Result struct {
	Text            string
	HadReplacements bool
}

// Lookup resolves an encoding label such as "utf-8", "latin1" or
// "windows-1252". Unknown labels return ECONFIG.
func Lookup(label string) (encoding.Encoding, error) {
	if strings.TrimSpace(label) == "" {
		label = DefaultEncoding
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, html2txt.Errorf(html2txt.ECONFIG, "unsupported encoding %q", label)
	}
	return enc, nil
}

// Decode converts raw bytes in the labeled encoding to a UTF-8 string.
// A leading byte order mark is dropped.
func Decode(raw []byte, label string) (*Result, error) {
	enc, err := Lookup(label)
	if err != nil {
		return nil, err
	}

	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		if utf8.Valid(raw) {
			return &Result{Text: trimBOM(string(raw))}, nil
		}
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return nil, html2txt.Errorf(html2txt.EDOCUMENT, "decode %s: %v", label, err)
	}

	return &Result{
		Text:            trimBOM(string(out)),
		HadReplacements: bytes.ContainsRune(out, utf8.RuneError),
	}, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
