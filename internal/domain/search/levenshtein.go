// Package search implements the fuzzy matching policy behind the command
// palette.
package search

import "unicode/utf8"

// LevenshteinDistance calculates the edit distance between two strings,
// counting runes rather than bytes.
func LevenshteinDistance(s1, s2 string) int {
	runes1 := []rune(s1)
	runes2 := []rune(s2)

	if len(runes1) == 0 {
		return len(runes2)
	}
	if len(runes2) == 0 {
		return len(runes1)
	}

	prev := make([]int, len(runes2)+1)
	curr := make([]int, len(runes2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(runes1); i++ {
		curr[0] = i
		for j := 1; j <= len(runes2); j++ {
			cost := 1
			if runes1[i-1] == runes2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(runes2)]
}

// LevenshteinSimilarity converts Levenshtein distance to a similarity score
// in [0, 1]: 1 - distance / max(len(s1), len(s2)).
func LevenshteinSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	maxLen := max(utf8.RuneCountInString(s1), utf8.RuneCountInString(s2))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(LevenshteinDistance(s1, s2))/float64(maxLen)
}
