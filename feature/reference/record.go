package reference

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Record is one row from the reference dataset, augmented with the
// pre-normalized fields the matcher works on.
type Record struct {
	// ItemNumber is the internal inventory identifier, output verbatim.
	ItemNumber string
	// ItemName is free text, matched fuzzily against product codes.
	ItemName string
	// BaseColorWords is the set of folded word tokens from the base color text.
	BaseColorWords map[string]struct{}
	// NormalizedMaterial is the material/color code with all
	// non-alphanumerics removed and case folded.
	NormalizedMaterial string
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Fold lowercases and strips combining accents (e.g. "Crème Brûlée" -> "creme brulee").
func Fold(s string) string {
	result, _, _ := transform.String(stripAccents, strings.ToLower(s))
	return result
}

// ColorWords extracts the set of folded word tokens from a descriptive
// color text. "Natural Oak Finish" yields {natural, oak, finish}.
func ColorWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(Fold(s), -1) {
		words[w] = struct{}{}
	}
	return words
}

// NormalizeCode strips everything but letters and digits and case folds,
// so "Dark-Grey 01" and "darkgrey01" compare equal.
func NormalizeCode(s string) string {
	var b strings.Builder
	for _, r := range Fold(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsSubset reports whether every word of sub occurs in super.
// An empty sub never matches: a record without base color words carries no
// evidence and must not pass the subset condition.
func IsSubset(sub, super map[string]struct{}) bool {
	if len(sub) == 0 {
		return false
	}
	for w := range sub {
		if _, ok := super[w]; !ok {
			return false
		}
	}
	return true
}
