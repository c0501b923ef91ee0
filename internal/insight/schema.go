package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// structuredReply is the JSON document requested from backends that support
// schema-constrained output.
type structuredReply struct {
	Summary string   `json:"summary" jsonschema:"description=A 1-2 sentence summary of the text"`
	Topics  []string `json:"topics" jsonschema:"description=Exactly three short topics"`
}

const structuredReplyName = "TextInsight"

var structuredReplySchema = mustSchema[structuredReply]()

func mustSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	raw, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		panic(err)
	}
	strictObjects(schema)
	return schema
}

// strictObjects marks every object in schema as closed with all properties
// required, which strict structured-output modes insist on.
func strictObjects(schema map[string]any) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]any); ok {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
		}
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		for _, prop := range props {
			if m, ok := prop.(map[string]any); ok {
				strictObjects(m)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		strictObjects(items)
	}
}

// decodeStructuredReply unmarshals a schema-constrained reply, tolerating
// whitespace or prose around the JSON object.
func decodeStructuredReply(reply string) (structuredReply, error) {
	var out structuredReply
	s := strings.TrimSpace(reply)
	if s == "" {
		return out, fmt.Errorf("empty structured reply")
	}
	if err := json.Unmarshal([]byte(s), &out); err == nil {
		return out, nil
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return out, fmt.Errorf("no JSON object in structured reply (len=%d)", len(s))
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), &out); err != nil {
		return out, fmt.Errorf("decode structured reply: %w", err)
	}
	return out, nil
}
