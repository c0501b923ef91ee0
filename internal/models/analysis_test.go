package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSentiment_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		value    Sentiment
		expected bool
	}{
		{"positive", SentimentPositive, true},
		{"neutral", SentimentNeutral, true},
		{"negative", SentimentNegative, true},
		{"empty", "", false},
		{"uppercase", "POSITIVE", false},
		{"unknown", "mixed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSentiments_AllValid(t *testing.T) {
	if len(Sentiments) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(Sentiments))
	}
	for _, s := range Sentiments {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
}

func TestSentimentConstants(t *testing.T) {
	if SentimentPositive != "positive" {
		t.Errorf("SentimentPositive = %q, want %q", SentimentPositive, "positive")
	}
	if SentimentNeutral != "neutral" {
		t.Errorf("SentimentNeutral = %q, want %q", SentimentNeutral, "neutral")
	}
	if SentimentNegative != "negative" {
		t.Errorf("SentimentNegative = %q, want %q", SentimentNegative, "negative")
	}
}

func TestAnalysisResult_NullTitle(t *testing.T) {
	result := AnalysisResult{
		Topics:    []string{"general"},
		Sentiment: SentimentNeutral,
		Keywords:  []string{},
		Summary:   "short",
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"title":null`) {
		t.Errorf("expected null title in %s", data)
	}
}

func TestAnalysisRecord_FlattensResult(t *testing.T) {
	title := "Weekly update"
	record := NewAnalysisRecord("Weekly update\nAll good.", AnalysisResult{
		Title:     &title,
		Sentiment: SentimentPositive,
		Summary:   "All good.",
	})

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"id", "created_at", "text", "title", "sentiment", "summary"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
}
