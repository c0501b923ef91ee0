package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Sentiment is the three-way label produced by the lexicon scorer.
type Sentiment string

// Sentiment labels.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Sentiments lists every valid label in a stable order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// IsValid reports whether s is one of the known labels.
func (s Sentiment) IsValid() bool {
	return slices.Contains(Sentiments, s)
}

// AnalysisResult is the structured insight produced for one piece of text.
type AnalysisResult struct {
	Title     *string   `json:"title"`
	Topics    []string  `json:"topics"`
	Sentiment Sentiment `json:"sentiment"`
	Keywords  []string  `json:"keywords"`
	Summary   string    `json:"summary"`
}

// AnalysisRecord is a stored AnalysisResult together with the text it was built from.
type AnalysisRecord struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Text      string    `json:"text"`
	AnalysisResult
}

// NewAnalysisRecord wraps a result for persistence. ID and CreatedAt are
// left for the store to assign.
func NewAnalysisRecord(text string, result AnalysisResult) *AnalysisRecord {
	return &AnalysisRecord{Text: text, AnalysisResult: result}
}

// SearchFilters narrows a search over stored analyses. Empty fields are ignored.
type SearchFilters struct {
	Keyword   string
	Sentiment Sentiment
}

// SentimentCount is the number of stored analyses carrying one label.
type SentimentCount struct {
	Sentiment Sentiment
	Count     int64
}
