package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopWords are dropped by tokenize.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "for": {}, "of": {}, "on": {}, "the": {}, "to": {}, "with": {},
}

// fold lowercases s and strips diacritics (Café -> cafe).
func fold(s string) string {
	if isASCII(s) {
		return strings.ToLower(s)
	}
	// transform.Chain keeps internal state, so one is built per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// normalizeText lowercases s, replaces every run of non [a-z0-9] characters with a
// single space and trims the result.
func normalizeText(s string) string {
	s = fold(s)
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlnum(c) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteByte(c)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// normalizeCode lowercases s and strips every non [a-z0-9] character.
func normalizeCode(s string) string {
	s = fold(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isAlnum(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// tokenize splits normalized text into tokens and drops stop words.
func tokenize(s string) []string {
	parts := strings.Fields(normalizeText(s))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if _, stop := stopWords[p]; stop {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
