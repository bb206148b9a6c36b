// Package sanitizer strips terminal control sequences from server-provided
// text before it is drawn.
package sanitizer

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var escapePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\x1b\[[<>?=]?[0-9;]*[A-Za-z@^` + "`" + `~{|}!]`),
	regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`),
	regexp.MustCompile(`\x1b[()][AB012]`),
}

// Line returns text as a single display line: escape sequences and control
// characters removed, line breaks folded into spaces. A positive maxWidth
// truncates by display cells.
func Line(text string, maxWidth int) string {
	if text == "" {
		return ""
	}
	for _, p := range escapePatterns {
		text = p.ReplaceAllString(text, "")
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteByte(' ')
		case r < 32 || r == 127:
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if maxWidth > 0 && runewidth.StringWidth(out) > maxWidth {
		out = runewidth.Truncate(out, maxWidth, "…")
	}
	return out
}
