package similarity

import (
	"fmt"
	"math"
)

const (
	// DefaultScriptThreshold rejects generated scripts at or above this
	// similarity against any existing script.
	DefaultScriptThreshold = 0.35
	// DefaultTopicThreshold flags topic titles at or above this similarity.
	DefaultTopicThreshold = 0.5
	// minScriptNGrams is the minimum candidate n-gram set size before the
	// check means anything; shorter candidates always pass.
	minScriptNGrams = 3
	// minTopicWords is the minimum qualifying word count before topic titles
	// are compared.
	minTopicWords = 2
	// topicWordMinLen filters short words out of topic title comparison.
	topicWordMinLen = 2
)

// Document is a comparison target drawn from the existing corpus.
type Document struct {
	ID    int64
	Title string
	Text  string
}

// Result reports the outcome of a duplicate check.
type Result struct {
	Passed            bool
	HighestSimilarity float64
	MatchID           int64
	MatchTitle        string
}

// Reject formats the human-readable failure message carrying the rounded
// similarity percentage.
func (r Result) Reject() string {
	return fmt.Sprintf("content is %.0f%% similar to existing script %q (id %d)",
		r.HighestSimilarity*100, r.MatchTitle, r.MatchID)
}

// Checker holds the thresholds for duplicate detection.
type Checker struct {
	NGramSize       int
	ScriptThreshold float64
	TopicThreshold  float64
}

// NewChecker returns a Checker with repository defaults.
func NewChecker() Checker {
	return Checker{
		NGramSize:       DefaultNGramSize,
		ScriptThreshold: DefaultScriptThreshold,
		TopicThreshold:  DefaultTopicThreshold,
	}
}

// CheckScript compares a candidate script body against the corpus of existing
// script texts. Candidates whose n-gram set has fewer than three members pass
// unconditionally; otherwise the maximum similarity found decides the outcome.
func (c Checker) CheckScript(candidate string, corpus []Document) Result {
	n := c.NGramSize
	if n < 1 {
		n = DefaultNGramSize
	}
	threshold := c.ScriptThreshold
	if threshold <= 0 {
		threshold = DefaultScriptThreshold
	}

	candidateGrams := NGrams(candidate, n)
	if len(candidateGrams) < minScriptNGrams {
		return Result{Passed: true}
	}

	result := Result{Passed: true}
	for _, doc := range corpus {
		score := Jaccard(candidateGrams, NGrams(doc.Text, n))
		if score > result.HighestSimilarity {
			result.HighestSimilarity = score
			result.MatchID = doc.ID
			result.MatchTitle = doc.Title
		}
	}
	result.HighestSimilarity = round2(result.HighestSimilarity)
	if result.HighestSimilarity >= threshold {
		result.Passed = false
	}
	return result
}

// CheckTopic compares a topic title against existing titles using word-set
// Jaccard rather than n-grams. Titles with fewer than two qualifying words
// pass unconditionally.
func (c Checker) CheckTopic(title string, existing []Document) Result {
	threshold := c.TopicThreshold
	if threshold <= 0 {
		threshold = DefaultTopicThreshold
	}

	candidateWords := WordSet(title, topicWordMinLen)
	if len(candidateWords) < minTopicWords {
		return Result{Passed: true}
	}

	result := Result{Passed: true}
	for _, doc := range existing {
		score := Jaccard(candidateWords, WordSet(doc.Title, topicWordMinLen))
		if score > result.HighestSimilarity {
			result.HighestSimilarity = score
			result.MatchID = doc.ID
			result.MatchTitle = doc.Title
		}
	}
	result.HighestSimilarity = round2(result.HighestSimilarity)
	if result.HighestSimilarity >= threshold {
		result.Passed = false
	}
	return result
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
