package similarity

import "strings"

// DefaultNGramSize is the window used for script comparison.
const DefaultNGramSize = 4

// NGrams tokenizes normalized text and emits every contiguous run of n tokens
// joined by a single space, as a set. Texts shorter than n tokens yield an
// empty set.
func NGrams(text string, n int) map[string]struct{} {
	if n < 1 {
		n = DefaultNGramSize
	}
	tokens := Tokenize(text)
	if len(tokens) < n {
		return map[string]struct{}{}
	}
	grams := make(map[string]struct{}, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams[strings.Join(tokens[i:i+n], " ")] = struct{}{}
	}
	return grams
}

// Jaccard computes |A∩B| / |A∪B| for two sets. Defined as 0 when both sets
// are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for member := range small {
		if _, ok := large[member]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
