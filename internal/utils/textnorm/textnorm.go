// Package textnorm normalizes free-text transaction descriptions so that the
// same merchant written differently by the bank groups under one key.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases s, strips diacritics, turns every non-alphanumeric rune
// into a separator, drops purely numeric tokens and collapses whitespace.
// "NETFLIX.COM 0423" and "Netflix.com" both normalize to "netflix com".
func Normalize(s string) string {
	s = stripDiacritics(strings.ToLower(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if isNumber(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// WordSet returns the distinct words longer than one character of the normalized text.
func WordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(Normalize(s)) {
		if len([]rune(w)) > 1 {
			set[w] = struct{}{}
		}
	}
	return set
}

// Jaccard returns |a∩b| / |a∪b| over the word sets of a and b. Two texts without
// any qualifying word have a similarity of 0.
func Jaccard(a, b string) float64 {
	wa, wb := WordSet(a), WordSet(b)
	if len(wa) == 0 && len(wb) == 0 {
		return 0
	}
	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}
