package search

import "strings"

// legacyDocumentScore replicates the stork-2 result-score formula verbatim
// for read compatibility: the mean of each matched query token's own
// (un-importance-weighted) score, times the number of content hits, times
// 1000, divided by the document's whitespace-split word count. Unlike the
// v3/v4 path, it does not apply an excerpt-rank weighting or a title boost,
// since the legacy format never stored title hits to begin with.
func legacyDocumentScore(hits []intermediateHit, contents string) uint32 {
	if len(hits) == 0 {
		return 0
	}

	wordCount := len(strings.Fields(contents))
	if wordCount == 0 {
		return 0
	}

	tokenScores := make(map[string]float64, len(hits))

	for _, h := range hits {
		if _, ok := tokenScores[h.QueryText]; !ok {
			tokenScores[h.QueryText] = h.TokenScore
		}
	}

	var sum float64
	for _, s := range tokenScores {
		sum += s
	}

	mean := sum / float64(len(tokenScores))

	score := mean * float64(len(hits)) * 1000 / float64(wordCount)
	if score < 0 {
		score = 0
	}

	return uint32(score) //nolint:gosec // scores are non-negative and bounded by corpus size
}
