package apidocs

import (
	"encoding/json"
	"fmt"
)

// ParseCollection interprets a page's stored content text as an endpoint
// collection. Malformed JSON and non-array roots both yield an empty
// collection rather than an error: the caller treats "no endpoints yet" and
// "unreadable content" identically, and a corrupt blob must never block the
// editor from opening. Elements are accepted as-is with no per-field
// validation; absent optional fields stay nil until Normalized.
func ParseCollection(text string) Collection {
	var c Collection
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		return Collection{}
	}
	if c == nil {
		return Collection{}
	}
	return c
}

// SerializeCollection renders the collection as the canonical content text:
// 2-space indented JSON with keys in record-model field order. For any
// collection produced by the editor, ParseCollection is an exact inverse.
func SerializeCollection(c Collection) (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize endpoint collection: %w", err)
	}
	return string(data), nil
}

// PrettyValue renders an arbitrary JSON-compatible value with canonical
// 2-space indentation. Used for draft text, example display and snippet
// payloads.
func PrettyValue(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render value: %w", err)
	}
	return string(data), nil
}

// ParseValue parses raw JSON text into a generic value. Unlike
// ParseCollection this surfaces the parser's error detail, because draft
// editing shows the message next to the offending field.
func ParseValue(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}
