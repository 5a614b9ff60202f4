// Package keywords implements lexical token extraction for sparse matching.
package keywords

import (
	"regexp"
	"strings"
)

var (
	wordRe = regexp.MustCompile(`\w+`)
	// Original-case tokens that look like identifiers or error codes:
	// start with an uppercase letter or digit, at least two chars.
	identRe = regexp.MustCompile(`\b[A-Z0-9][A-Za-z0-9_-]+\b`)
	hexRe   = regexp.MustCompile(`0x[0-9A-Fa-f]+`)
)

// Extract returns the keyword set for text: case-folded word tokens,
// original-case identifier-like tokens, and hex literals. Deterministic and
// side-effect free.
func Extract(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		set[w] = true
	}
	for _, w := range identRe.FindAllString(text, -1) {
		set[w] = true
	}
	for _, w := range hexRe.FindAllString(text, -1) {
		set[w] = true
	}
	return set
}

// Overlap scores how much of the query keyword set appears in the content
// keyword set: |query ∩ content| / |query|. Returns 0 when the query has no
// keywords. Always in [0, 1].
func Overlap(query, content map[string]bool) float64 {
	if len(query) == 0 {
		return 0
	}
	matched := 0
	for k := range query {
		if content[k] {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}

// Matches returns the query keywords present in content, for result
// annotation in keyword-only search.
func Matches(query, content map[string]bool) []string {
	var out []string
	for k := range query {
		if content[k] {
			out = append(out, k)
		}
	}
	return out
}
