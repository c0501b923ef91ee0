package insight

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// TopicParser extracts a topic list from a free-form backend reply.
// The boolean is false when the reply holds no usable list.
type TopicParser interface {
	ParseTopics(reply string) ([]string, bool)
}

// BracketParser reads the span from the first '[' to the last ']' of a
// reply as a JSON array. Elements are converted to their string form and
// the list is capped at three entries.
type BracketParser struct{}

// ParseTopics implements TopicParser.
func (BracketParser) ParseTopics(reply string) ([]string, bool) {
	start := strings.IndexByte(reply, '[')
	end := strings.LastIndexByte(reply, ']')
	if start < 0 || end < start {
		return nil, false
	}

	var parsed any
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		return nil, false
	}
	items, ok := parsed.([]any)
	if !ok {
		return nil, false
	}

	topics := make([]string, 0, min(len(items), maxTopics))
	for _, item := range items {
		if len(topics) == maxTopics {
			break
		}
		topics = append(topics, stringify(item))
	}
	return topics, true
}

// stringify renders a decoded JSON value as text. Arrays join their
// elements with commas and objects collapse to a fixed marker.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatNumber(val)
	case []any:
		parts := make([]string, len(val))
		for i, elem := range val {
			if elem == nil {
				continue
			}
			parts[i] = stringify(elem)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return ""
	}
}

// formatNumber prints magnitudes in [1e-6, 1e21) in plain decimal form and
// everything else as a compact exponent ("1e-7", "1.5e+21").
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	n, _ := strconv.Atoi(exp)
	sign := "+"
	if n < 0 {
		sign = "-"
		n = -n
	}
	return mantissa + "e" + sign + strconv.Itoa(n)
}
