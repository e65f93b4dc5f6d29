package gutensearch

import "strings"

// allowedRune reports whether r belongs to the tokenizer's alphabet: the
// 26 lowercase ASCII letters plus a fixed set of accented Latin letters.
// Input is lowercased before this check runs, so uppercase letters never
// reach it directly.
func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case strings.ContainsRune("àâçéèêëîïôûùüÿñœ", r):
		return true
	default:
		return false
	}
}

// Tokenize lowercases text and splits it into maximal runs of allowed
// alphabet characters, in left-to-right order of appearance. It performs
// no stemming, stopword removal, or minimum-length filtering: every run
// it finds is a token.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !allowedRune(r)
	})
}

// TokenCounts returns the number of occurrences of each distinct token in
// text, used both by the Inverted-Index Builder and by tests checking the
// per-book, per-term count invariant directly against tokenizer output.
func TokenCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range Tokenize(text) {
		counts[tok]++
	}
	return counts
}
