// Package toml loads default flag values for the CLI from TOML files.
package toml

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/html2txt"
	"github.com/pelletier/go-toml/v2"
)

// Loader is a kong.ConfigurationLoader that reads flag defaults from TOML.
//
// Keys are flag names and may use dashes or underscores:
//
//	output-dir = "outputs/processed/bible_txt"
//	strip_angle_buttons = true
//	ext = ["htm", "html", "xhtml"]
//
// Arrays become comma-separated values. Tables flatten into dotted keys.
func Loader(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any
	if err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, html2txt.Errorf(html2txt.ECONFIG, "config: %v", err)
	}

	values := make(map[string]any)
	flatten(values, raw, "")

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, key := range keys(flag.Name) {
			if v, ok := values[key]; ok {
				return v, nil
			}
		}
		return nil, nil
	}
	return f, nil
}

// keys returns the lookup keys for a flag name: as given, then with
// dashes and underscores swapped.
func keys(name string) []string {
	return []string{
		name,
		strings.ReplaceAll(name, "-", "_"),
		strings.ReplaceAll(name, "_", "-"),
	}
}

// flatten converts nested tables to dotted keys and normalizes values
// into forms kong's mappers accept.
func flatten(dst map[string]any, src map[string]any, prefix string) {
	for key, value := range src {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(dst, v, full)
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			dst[full] = strings.Join(parts, ",")
		case bool, string:
			dst[full] = v
		default:
			dst[full] = fmt.Sprint(v)
		}
	}
}
