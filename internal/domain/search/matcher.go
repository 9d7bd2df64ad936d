package search

import "strings"

// DefaultThreshold is the minimum similarity for an edit-distance match.
const DefaultThreshold = 0.6

// Matcher decides whether an item's text fields satisfy a query.
//
// The query is lowercased and split on whitespace. Every token must match
// at least one field; a token matches a field when it is a substring of the
// lowercased field or when their Levenshtein similarity reaches Threshold.
type Matcher struct {
	Threshold float64
}

// NewMatcher returns a matcher, substituting DefaultThreshold for
// non-positive thresholds.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{Threshold: threshold}
}

// Tokenize lowercases the query and splits it on whitespace.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Match reports whether all query tokens match some field.
// An empty query matches everything.
func (m *Matcher) Match(query string, fields ...string) bool {
	return m.MatchTokens(Tokenize(query), fields...)
}

// MatchTokens is Match for an already tokenized query.
func (m *Matcher) MatchTokens(tokens []string, fields ...string) bool {
	if len(tokens) == 0 {
		return true
	}

	lowered := make([]string, len(fields))
	for i, f := range fields {
		lowered[i] = strings.ToLower(f)
	}

	for _, token := range tokens {
		if !m.tokenMatchesAny(token, lowered) {
			return false
		}
	}
	return true
}

func (m *Matcher) tokenMatchesAny(token string, fields []string) bool {
	for _, field := range fields {
		if strings.Contains(field, token) {
			return true
		}
		if LevenshteinSimilarity(token, field) >= m.Threshold {
			return true
		}
	}
	return false
}

// Filter returns the items whose fields match the query, preserving order.
func Filter[T any](m *Matcher, items []T, query string, fields func(T) []string) []T {
	tokens := Tokenize(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if m.MatchTokens(tokens, fields(item)...) {
			out = append(out, item)
		}
	}
	return out
}
