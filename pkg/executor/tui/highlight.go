package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	snippetLexer     = "html"
	snippetFormatter = "terminal256"
	snippetStyle     = "monokai"
)

// highlightHTML colors an element's markup for the terminal. The source is
// returned unchanged when highlighting fails.
func highlightHTML(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var b strings.Builder
	if err := quick.Highlight(&b, src, snippetLexer, snippetFormatter, snippetStyle); err != nil {
		return src
	}
	return b.String()
}
