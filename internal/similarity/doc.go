// Package similarity provides text normalization, n-gram extraction, and
// Jaccard comparison used to reject near-duplicate generated scripts and
// flag near-duplicate topics.
//
// Scripts are compared as sets of 4-token n-grams; topic titles as word sets.
// Both checks are pure functions over their inputs and carry conservative
// short-text bypasses to avoid false positives on trivial content.
package similarity
