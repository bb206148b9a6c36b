package quicksearch

import (
	"sort"
	"strings"
)

// Span is a byte range [Start, End) of a matched query word.
type Span struct {
	Start int
	End   int
}

// MatchSpans finds every case-insensitive occurrence of each space-separated
// word of query in text. Overlapping matches are merged.
func MatchSpans(text, query string) []Span {
	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		return nil
	}
	var spans []Span
	for _, word := range strings.Split(query, " ") {
		word = strings.ToLower(word)
		if word == "" {
			continue
		}
		for from := 0; from < len(lower); {
			i := strings.Index(lower[from:], word)
			if i < 0 {
				break
			}
			start := from + i
			spans = append(spans, Span{Start: start, End: start + len(word)})
			from = start + len(word)
		}
	}
	return mergeSpans(spans)
}

func mergeSpans(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	out := []Span{spans[0]}
	for _, span := range spans[1:] {
		last := &out[len(out)-1]
		if span.Start <= last.End {
			if span.End > last.End {
				last.End = span.End
			}
			continue
		}
		out = append(out, span)
	}
	return out
}

// Highlight wraps every matched span of text with mark.
func Highlight(text, query string, mark func(string) string) string {
	spans := MatchSpans(text, query)
	if len(spans) == 0 || mark == nil {
		return text
	}
	var b strings.Builder
	prev := 0
	for _, span := range spans {
		b.WriteString(text[prev:span.Start])
		b.WriteString(mark(text[span.Start:span.End]))
		prev = span.End
	}
	b.WriteString(text[prev:])
	return b.String()
}
