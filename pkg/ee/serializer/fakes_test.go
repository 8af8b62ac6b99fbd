package serializer

import (
	"github.com/vk/eegraph/internal/literal"
)

// apiName is a named remote function.
type apiName string

func (n apiName) EncodeInvocation(Encoder) (any, error) { return string(n), nil }

func (n apiName) EncodeCloudInvocation(CloudEncoder) (map[string]any, error) {
	return map[string]any{KeyFunctionName: string(n)}, nil
}

// call is a minimal invocation node.
type call struct {
	fn   EncodableFunction
	args map[string]any
}

func newCall(fn string, args map[string]any) *call {
	return &call{fn: apiName(fn), args: args}
}

func (c *call) Encode(enc Encoder) (any, error) {
	fn, err := c.fn.EncodeInvocation(enc)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if name, ok := fn.(string); ok {
		out[KeyAlgorithm] = name
	} else {
		out[KeyFunction] = fn
	}
	for _, k := range literal.SortedKeys(c.args) {
		v, err := enc(c.args[k])
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (c *call) EncodeCloudValue(enc CloudEncoder) (map[string]any, error) {
	inv, err := c.fn.EncodeCloudInvocation(enc)
	if err != nil {
		return nil, err
	}
	args := map[string]any{}
	for _, k := range literal.SortedKeys(c.args) {
		v, err := enc(c.args[k])
		if err != nil {
			return nil, err
		}
		args[k] = v
	}
	inv[KeyArguments] = args
	return map[string]any{KeyFunctionInvocationValue: inv}, nil
}

// variable is a bound parameter placeholder.
type variable string

func (v variable) Encode(Encoder) (any, error) {
	return map[string]any{KeyArgumentReference: string(v)}, nil
}

func (v variable) EncodeCloudValue(CloudEncoder) (map[string]any, error) {
	return map[string]any{KeyArgumentReference: string(v)}, nil
}

// lambda is a user-defined function.
type lambda struct {
	argNames []string
	body     any
}

func (l *lambda) Encode(enc Encoder) (any, error) {
	body, err := enc(l.body)
	if err != nil {
		return nil, err
	}
	return map[string]any{KeyType: TypeFunction, KeyArgumentNames: l.argNames, KeyBody: body}, nil
}

func (l *lambda) EncodeCloudValue(enc CloudEncoder) (map[string]any, error) {
	body, err := enc(l.body)
	if err != nil {
		return nil, err
	}
	ref, err := Reference(body)
	if err != nil {
		return nil, err
	}
	return map[string]any{KeyFunctionDefinitionValue: map[string]any{
		KeyArgumentNames: l.argNames,
		KeyBody:          ref,
	}}, nil
}

func (l *lambda) EncodeInvocation(enc Encoder) (any, error) {
	return enc(l)
}

func (l *lambda) EncodeCloudInvocation(enc CloudEncoder) (map[string]any, error) {
	encoded, err := enc(l)
	if err != nil {
		return nil, err
	}
	ref, err := Reference(encoded)
	if err != nil {
		return nil, err
	}
	return map[string]any{KeyFunctionReference: ref}, nil
}
