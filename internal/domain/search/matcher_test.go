package search_test

import (
	"testing"

	"github.com/bnema/bezier/internal/domain/search"
	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected int
	}{
		{"", "", 0},
		{"", "test", 4},
		{"test", "", 4},
		{"test", "test", 0},
		{"kitten", "sitting", 3},
		{"goog", "google", 2},
		{"café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_vs_"+tt.s2, func(t *testing.T) {
			assert.Equal(t, tt.expected, search.LevenshteinDistance(tt.s1, tt.s2))
		})
	}
}

func TestLevenshteinSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, search.LevenshteinSimilarity("", ""), 0.0001)
	assert.InDelta(t, 2.0/3.0, search.LevenshteinSimilarity("goog", "google"), 0.0001)
	assert.InDelta(t, 0.0, search.LevenshteinSimilarity("abc", "xyz"), 0.0001)
}

func TestMatcher_Match(t *testing.T) {
	m := search.NewMatcher(0)

	tests := []struct {
		name   string
		query  string
		fields []string
		want   bool
	}{
		{name: "prefix of title", query: "goog", fields: []string{"Google"}, want: true},
		{name: "unrelated", query: "xyz123", fields: []string{"Google"}, want: false},
		{name: "empty query", query: "", fields: []string{"Google"}, want: true},
		{name: "whitespace query", query: "   ", fields: nil, want: true},
		{name: "case insensitive substring", query: "HUB", fields: []string{"github.com"}, want: true},
		{name: "typo within threshold", query: "gogle", fields: []string{"google"}, want: true},
		{name: "all tokens must match", query: "go xyz123", fields: []string{"Google"}, want: false},
		{name: "tokens across fields", query: "docs github", fields: []string{"Go docs", "https://github.com"}, want: true},
		{name: "no fields", query: "a", fields: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.query, tt.fields...))
		})
	}
}

func TestMatcher_Threshold(t *testing.T) {
	strict := search.NewMatcher(0.9)
	assert.False(t, strict.Match("gogle", "google"))
	assert.Equal(t, search.DefaultThreshold, search.NewMatcher(-1).Threshold)
}

func TestFilter_PreservesOrder(t *testing.T) {
	type item struct{ title, url string }
	items := []item{
		{"Go Blog", "https://go.dev/blog"},
		{"Rust", "https://rust-lang.org"},
		{"Go Playground", "https://go.dev/play"},
	}

	got := search.Filter(search.NewMatcher(0), items, "go.dev", func(i item) []string {
		return []string{i.title, i.url}
	})

	assert.Equal(t, []item{items[0], items[2]}, got)
}
