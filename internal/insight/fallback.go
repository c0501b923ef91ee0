package insight

import (
	"regexp"
	"strings"
)

const (
	maxSummaryRunes = 160
	ellipsis        = "..."
	maxTopics       = 3
)

// placeholderTopics is returned when the text has no usable words at all.
var placeholderTopics = []string{"general", "update", "text"}

var topicWordPattern = regexp.MustCompile(`[a-z]{4,}`)

// Summarize collapses whitespace and truncates the result to 160 characters,
// marking truncation with an ellipsis.
func Summarize(input string) string {
	collapsed := strings.Join(strings.Fields(input), " ")
	runes := []rune(collapsed)
	if len(runes) <= maxSummaryRunes {
		return collapsed
	}
	return string(runes[:maxSummaryRunes-len(ellipsis)]) + ellipsis
}

// FallbackTopics returns the first three distinct runs of four or more
// lowercase letters in input.
func FallbackTopics(input string) []string {
	words := topicWordPattern.FindAllString(strings.ToLower(input), -1)

	seen := make(map[string]struct{}, len(words))
	topics := make([]string, 0, maxTopics)
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		topics = append(topics, w)
		if len(topics) == maxTopics {
			break
		}
	}

	if len(topics) == 0 {
		return append([]string(nil), placeholderTopics...)
	}
	return topics
}

// FirstLine returns the first non-empty trimmed line of reply.
func FirstLine(reply string) (string, bool) {
	for _, line := range strings.Split(reply, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}
