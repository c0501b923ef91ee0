package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"textinsight/internal/models"
)

// MaxTextLength is the largest accepted analysis input, in characters.
const MaxTextLength = 100_000

// ValidateText checks that text is present and within MaxTextLength.
func ValidateText(text string) (bool, string) {
	if text == "" {
		return false, "text is required"
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return false, fmt.Sprintf("text must be at most %d characters", MaxTextLength)
	}
	return true, ""
}

// NormalizeKeyword lowercases and trims a search keyword so lookups are
// case-insensitive.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// ParseSentimentFilter validates an optional sentiment filter. An empty
// value means no filter.
func ParseSentimentFilter(raw string) (models.Sentiment, bool, string) {
	if raw == "" {
		return "", true, ""
	}
	s := models.Sentiment(raw)
	if !s.IsValid() {
		return "", false, "sentiment must be one of " + sentimentList()
	}
	return s, true, ""
}

func sentimentList() string {
	names := make([]string, len(models.Sentiments))
	for i, s := range models.Sentiments {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
