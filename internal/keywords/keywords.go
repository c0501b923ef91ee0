// Package keywords ranks the most frequent content words of a text.
//
// Ranking is fully deterministic: tokens with equal counts are ordered
// lexicographically so identical input always yields identical output.
package keywords

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// DefaultMax is the number of keywords returned when the caller asks for none.
const DefaultMax = 3

// minTokenLength is the shortest token that can become a keyword.
const minTokenLength = 3

// apostrophes are removed from inside tokens so "don't" and "dont" count together.
var apostrophes = strings.NewReplacer("'", "", "’", "", "‘", "", "`", "")

// ExtractTopKeywords returns up to maxKeywords tokens of text ordered by
// descending frequency, ties broken by ascending token text.
func ExtractTopKeywords(text string, maxKeywords int) []string {
	if maxKeywords <= 0 {
		maxKeywords = DefaultMax
	}

	freq := Frequencies(text)
	if len(freq) == 0 {
		return []string{}
	}

	type entry struct {
		token string
		count int
	}
	entries := make([]entry, 0, len(freq))
	for token, count := range freq {
		entries = append(entries, entry{token, count})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return strings.Compare(a.token, b.token)
	})

	if len(entries) > maxKeywords {
		entries = entries[:maxKeywords]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.token
	}
	return out
}

// Frequencies counts the keyword-eligible tokens of text.
func Frequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, piece := range strings.Fields(text) {
		token := NormalizeToken(piece)
		if !eligible(token) {
			continue
		}
		freq[token]++
	}
	return freq
}

// NormalizeToken lowercases piece, trims characters outside [a-z0-9] from
// both ends and drops apostrophes.
func NormalizeToken(piece string) string {
	token := strings.ToLower(piece)
	token = strings.TrimFunc(token, func(r rune) bool { return !isAlnum(r) })
	return apostrophes.Replace(token)
}

func eligible(token string) bool {
	if utf8.RuneCountInString(token) < minTokenLength {
		return false
	}
	if IsStopword(token) {
		return false
	}
	return strings.IndexFunc(token, isLetter) >= 0
}

func isAlnum(r rune) bool {
	return isLetter(r) || ('0' <= r && r <= '9')
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z'
}
