// internal/browse/highlight.go
package browse

import (
	"html"
	"strings"
	"unicode/utf8"
)

type Segment struct {
	Text    string `json:"text"`
	IsMatch bool   `json:"isMatch"`
}

// Highlight splits text on case-insensitive literal occurrences of term.
// Matches are leftmost and non-overlapping; empty segments are dropped. A
// blank term yields the whole text as a single unmatched segment.
func Highlight(text, term string) []Segment {
	if strings.TrimSpace(term) == "" {
		return []Segment{{Text: text}}
	}

	var segs []Segment
	start := 0
	for i := 0; i < len(text); {
		if n, ok := foldPrefix(text[i:], term); ok {
			if i > start {
				segs = append(segs, Segment{Text: text[start:i]})
			}
			segs = append(segs, Segment{Text: text[i : i+n], IsMatch: true})
			i += n
			start = i
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	if start < len(text) {
		segs = append(segs, Segment{Text: text[start:]})
	}
	return segs
}

// MarkHTML renders segments as escaped HTML with matches wrapped in <mark>.
func MarkHTML(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.IsMatch {
			b.WriteString("<mark>")
			b.WriteString(html.EscapeString(s.Text))
			b.WriteString("</mark>")
			continue
		}
		b.WriteString(html.EscapeString(s.Text))
	}
	return b.String()
}

// Plain joins segment texts back together.
func Plain(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}
