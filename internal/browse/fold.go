// internal/browse/fold.go
package browse

import (
	"strings"
	"unicode/utf8"
)

// foldPrefix reports whether s starts with term under simple Unicode case
// folding, returning the byte length of the match in s. Invalid UTF-8 bytes
// only match the identical byte.
func foldPrefix(s, term string) (int, bool) {
	n := 0
	for t := 0; t < len(term); {
		if n >= len(s) {
			return 0, false
		}
		tr, tsize := utf8.DecodeRuneInString(term[t:])
		sr, ssize := utf8.DecodeRuneInString(s[n:])
		if !runeFold(sr, ssize, s[n:], tr, tsize, term[t:]) {
			return 0, false
		}
		n += ssize
		t += tsize
	}
	return n, true
}

func runeFold(sr rune, ssize int, s string, tr rune, tsize int, term string) bool {
	sInvalid := sr == utf8.RuneError && ssize == 1
	tInvalid := tr == utf8.RuneError && tsize == 1
	if sInvalid || tInvalid {
		return sInvalid && tInvalid && s[0] == term[0]
	}
	return sr == tr || strings.EqualFold(string(sr), string(tr))
}

// containsFold reports whether term occurs in s under the same folding
// Highlight uses.
func containsFold(s, term string) bool {
	if term == "" {
		return true
	}
	for i := 0; i < len(s); {
		if _, ok := foldPrefix(s[i:], term); ok {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return false
}
