package serializer

import "fmt"

// Encoder encodes a nested value in the legacy encoding and returns either
// the inline value or a reference to it.
type Encoder func(v any) (any, error)

// CloudEncoder encodes a nested value in the cloud encoding and returns a
// {"valueReference": key} map.
type CloudEncoder func(v any) (map[string]any, error)

// Encodable is implemented by graph values.
type Encodable interface {
	Encode(enc Encoder) (any, error)
	EncodeCloudValue(enc CloudEncoder) (map[string]any, error)
}

// EncodableFunction is implemented by anything that can be the function of
// an invocation.
type EncodableFunction interface {
	// EncodeInvocation returns the function name as a string, or an encoded
	// function value.
	EncodeInvocation(enc Encoder) (any, error)

	// EncodeCloudInvocation returns either {"functionName": name} or
	// {"functionReference": key}.
	EncodeCloudInvocation(enc CloudEncoder) (map[string]any, error)
}

// NotImplementedError is returned for values that have no encoding.
type NotImplementedError struct {
	Value any
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("cannot encode object of type %T", e.Value)
}

// Options controls encoding.
type Options struct {
	// Compound enables the reference table. Without it every value is
	// inlined, so shared sub-expressions are repeated. Only the legacy
	// encoding honors it.
	Compound bool

	// Optimize inlines cloud values that are referenced once and renumbers
	// the rest.
	Optimize bool
}

// DefaultOptions are the options used to talk to the service.
func DefaultOptions() Options {
	return Options{Compound: true, Optimize: true}
}

// Reference extracts the key from a {"valueReference": key} map.
func Reference(encoded map[string]any) (string, error) {
	ref, ok := encoded[KeyValueReference].(string)
	if !ok {
		return "", fmt.Errorf("expected a value reference, got %v", encoded)
	}
	return ref, nil
}
