package trends

import (
	"sort"

	"reelpipe/internal/similarity"
)

const maxKeywords = 8

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "her": {}, "was": {}, "one": {},
	"our": {}, "out": {}, "has": {}, "had": {}, "how": {}, "man": {},
	"new": {}, "now": {}, "old": {}, "see": {}, "two": {}, "way": {},
	"who": {}, "its": {}, "did": {}, "get": {}, "him": {}, "his": {},
	"this": {}, "that": {}, "with": {}, "from": {}, "they": {},
	"will": {}, "have": {}, "more": {}, "when": {}, "what": {},
	"your": {}, "said": {}, "each": {}, "which": {}, "their": {},
	"about": {}, "would": {}, "there": {}, "could": {}, "other": {},
	"after": {}, "first": {}, "these": {}, "than": {}, "then": {},
	"them": {}, "some": {}, "just": {}, "into": {}, "over": {},
	"also": {}, "been": {}, "were": {}, "very": {}, "most": {},
	"why": {}, "here": {}, "where": {}, "does": {},
	"should": {}, "because": {}, "while": {}, "before": {},
}

// topKeywords returns the most frequent non-stop-word tokens across the
// titles, highest count first with ties broken by first appearance.
func topKeywords(titles []string, limit int) []string {
	counts := make(map[string]int)
	order := make(map[string]int)
	next := 0

	for _, title := range titles {
		for _, token := range similarity.Tokenize(title) {
			if len(token) <= 2 {
				continue
			}
			if _, stop := stopWords[token]; stop {
				continue
			}
			if _, seen := counts[token]; !seen {
				order[token] = next
				next++
			}
			counts[token]++
		}
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return order[words[i]] < order[words[j]]
	})

	if len(words) > limit {
		words = words[:limit]
	}
	return words
}
