package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextRelevance(t *testing.T) {
	tests := []struct {
		name  string
		query string
		texts []string
		want  float64
	}{
		{
			name:  "empty query",
			query: "",
			texts: []string{"anything"},
			want:  0,
		},
		{
			name:  "no texts",
			query: "cache",
			texts: nil,
			want:  0,
		},
		{
			name:  "no match",
			query: "cache",
			texts: []string{"unrelated text"},
			want:  0,
		},
		{
			// Phrase plus single word match on a 10-char text:
			// (10 + 1) / 10 * 100 = 110.
			name:  "phrase match",
			query: "cache",
			texts: []string{"cache miss"},
			want:  110,
		},
		{
			// Each word matches but not the phrase:
			// (1 + 1) / 20 * 100 = 10.
			name:  "word matches without phrase",
			query: "cache layer",
			texts: []string{"layer above a cache!"},
			want:  10,
		},
		{
			// Averaged across one matching and one empty-scoring text.
			name:  "average across texts",
			query: "cache",
			texts: []string{"cache miss", "nothing here"},
			want:  55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textRelevance(tt.query, tt.texts))
		})
	}
}

func TestTextRelevance_CaseInsensitive(t *testing.T) {
	upper := textRelevance("CACHE", []string{"Cache miss"})
	lower := textRelevance("cache", []string{"cache miss"})
	assert.Equal(t, lower, upper)
	assert.Positive(t, upper)
}

func TestExtractKeywords(t *testing.T) {
	keywords := extractKeywords([]string{"Migrate API gateway", "to a new API gateway"})

	// Short words drop out, duplicates collapse, order is first-seen.
	assert.Equal(t, []string{"migrate", "api", "gateway", "new"}, keywords)
}

func TestExtractKeywords_CapsAtTen(t *testing.T) {
	keywords := extractKeywords([]string{
		"alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima",
	})
	assert.Len(t, keywords, 10)
}

func TestKeywordSimilarity(t *testing.T) {
	keywords := []string{"api", "gateway", "metrics", "billing"}

	score := keywordSimilarity(keywords, []string{"New API gateway rollout"})
	assert.Equal(t, 50.0, score)

	assert.Equal(t, 0.0, keywordSimilarity(nil, []string{"text"}))
	assert.Equal(t, 0.0, keywordSimilarity(keywords, nil))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "abc...", snippet("abcdef", 3))
	assert.Equal(t, "ab...", snippet("ab", 5))
}
