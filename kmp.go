package gutensearch

// kmpLPS computes the "longest proper prefix that is also a suffix"
// table for pattern, the table Knuth-Morris-Pratt uses to avoid
// re-scanning text on a mismatch.
func kmpLPS(pattern string) []int {
	lps := make([]int, len(pattern))
	length := 0
	for i := 1; i < len(pattern); {
		if pattern[i] == pattern[length] {
			length++
			lps[i] = length
			i++
			continue
		}
		if length != 0 {
			length = lps[length-1]
			continue
		}
		lps[i] = 0
		i++
	}
	return lps
}

// KMPMatcher holds a precomputed LPS table for one literal pattern so the
// query pipeline can reuse it across every term scanned for a given
// keyword, instead of rebuilding it per term.
type KMPMatcher struct {
	pattern string
	lps     []int
}

// NewKMPMatcher precomputes the LPS table for pattern (expected already
// lowercased by the caller).
func NewKMPMatcher(pattern string) *KMPMatcher {
	return &KMPMatcher{pattern: pattern, lps: kmpLPS(pattern)}
}

// Contains reports whether m's pattern occurs anywhere in text.
func (m *KMPMatcher) Contains(text string) bool {
	if len(m.pattern) == 0 {
		return true
	}
	i, j := 0, 0
	for i < len(text) {
		if text[i] == m.pattern[j] {
			i++
			j++
			if j == len(m.pattern) {
				return true
			}
			continue
		}
		if j != 0 {
			j = m.lps[j-1]
			continue
		}
		i++
	}
	return false
}
