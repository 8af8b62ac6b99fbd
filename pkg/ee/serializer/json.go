package serializer

import (
	"bytes"
	"encoding/json"
)

// Canonical returns the canonical form of obj: the JSON of its unoptimized
// cloud encoding. Structurally equal graphs have equal canonical forms.
func Canonical(obj any) (string, error) {
	encoded, err := EncodeCloudValue(obj, Options{Compound: true})
	if err != nil {
		return "", err
	}
	return canonicalJSON(encoded)
}

// ToJSON returns the legacy encoding of obj as JSON.
func ToJSON(obj any, opts Options, indent bool) (string, error) {
	encoded, err := Encode(obj, opts)
	if err != nil {
		return "", err
	}
	b, err := Marshal(encoded, indent)
	return string(b), err
}

// ToCloudJSON returns the cloud encoding of obj as JSON.
func ToCloudJSON(obj any, opts Options, indent bool) (string, error) {
	encoded, err := EncodeCloudValue(obj, opts)
	if err != nil {
		return "", err
	}
	b, err := Marshal(encoded, indent)
	return string(b), err
}

// Marshal renders an encoded value as JSON with sorted keys and without
// HTML escaping.
func Marshal(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
