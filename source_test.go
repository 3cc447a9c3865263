package html2txt_test

import (
	"testing"

	"github.com/fwojciec/html2txt"
	"github.com/stretchr/testify/assert"
)

func TestParseExtensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "default list", in: "htm,html", want: []string{"htm", "html"}},
		{name: "dots spaces and case", in: " .HTM , Html ", want: []string{"htm", "html"}},
		{name: "duplicates removed", in: "html,HTML,.html", want: []string{"html"}},
		{name: "empty entries ignored", in: ",,xhtml,", want: []string{"xhtml"}},
		{name: "empty string", in: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, html2txt.ParseExtensions(tt.in))
		})
	}
}

func TestSourceFilter_Match(t *testing.T) {
	t.Parallel()

	filter := html2txt.SourceFilter{Extensions: html2txt.DefaultExtensions}

	assert.True(t, filter.Match("index.html"))
	assert.True(t, filter.Match("CHAPTER.HTM"))
	assert.True(t, filter.Match("dir/page.Html"))
	assert.False(t, filter.Match("notes.txt"))
	assert.False(t, filter.Match("html"))
	assert.False(t, filter.Match("page.html.bak"))
}
