package search

import (
	"math"
	"regexp"
	"strings"
)

const (
	phraseMatchScore = 10.0
	wordMatchScore   = 1.0
	maxKeywords      = 10
	minKeywordLen    = 3
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// textRelevance scores how well a set of texts matches a query. Each
// text earns a phrase-match bonus plus one point per matched query
// word, normalized by text length; the final score is the average
// across texts, rounded to two decimals.
func textRelevance(query string, texts []string) float64 {
	if query == "" || len(texts) == 0 {
		return 0
	}

	queryWords := strings.Fields(strings.ToLower(query))
	query = strings.ToLower(query)

	var total float64
	for _, text := range texts {
		if text == "" {
			continue
		}

		lower := strings.ToLower(text)
		var score float64

		if strings.Contains(lower, query) {
			score += phraseMatchScore
		}
		for _, word := range queryWords {
			if strings.Contains(lower, word) {
				score += wordMatchScore
			}
		}

		if n := len(lower); n > 0 {
			score = score / float64(n) * 100
		}
		total += score
	}

	return round2(total / float64(len(texts)))
}

// extractKeywords pulls distinct words of at least three characters
// out of the texts, in first-seen order, capped at ten.
func extractKeywords(texts []string) []string {
	joined := strings.ToLower(strings.Join(texts, " "))

	seen := make(map[string]bool)
	var keywords []string
	for _, word := range wordPattern.FindAllString(joined, -1) {
		if len([]rune(word)) < minKeywordLen || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// keywordSimilarity is the percentage of keywords found in the texts.
func keywordSimilarity(keywords, texts []string) float64 {
	if len(keywords) == 0 || len(texts) == 0 {
		return 0
	}

	joined := strings.ToLower(strings.Join(texts, " "))

	var matches int
	for _, kw := range keywords {
		if strings.Contains(joined, kw) {
			matches++
		}
	}

	return round2(float64(matches) / float64(len(keywords)) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// snippet cuts a string to at most n runes and marks the cut.
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}
