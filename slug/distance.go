package slug

import (
	"strings"
	"unicode"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// fold maps strings that a reader would consider the same to one form:
// case is folded, diacritics are dropped and the result is NFC normalized.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return folder.String(strings.TrimSpace(stripped))
}

// Distance is the edit distance between a and b after folding.
func Distance(a, b string) int {
	return levenshtein.Distance(fold(a), fold(b))
}
