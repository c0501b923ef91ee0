// Package sentiment labels text with a coarse lexicon score.
//
// Matching is substring containment over the lowercased text, not token
// matching: "window" scores for "win" and "disadvantage" scores for "sad".
// Stored analyses depend on this behavior, so it is kept as is.
package sentiment

import (
	"strings"

	"textinsight/internal/models"
)

var positiveWords = []string{
	"good", "great", "excellent", "positive", "happy",
	"success", "benefit", "win", "improve", "growth",
}

var negativeWords = []string{
	"bad", "poor", "terrible", "negative", "sad", "fail",
	"loss", "decline", "risk", "problem", "issue",
}

// Score returns the number of positive lexicon words contained in text
// minus the number of negative ones. Each word counts at most once.
func Score(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			score--
		}
	}
	return score
}

// NaiveSentiment maps the sign of Score to a label.
func NaiveSentiment(text string) models.Sentiment {
	return Label(Score(text))
}

// Label converts a net lexicon score to a sentiment label.
func Label(score int) models.Sentiment {
	switch {
	case score > 0:
		return models.SentimentPositive
	case score < 0:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
