package ee

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/vk/eegraph/internal/literal"
	"github.com/vk/eegraph/pkg/catalog"
	"github.com/vk/eegraph/pkg/ee/serializer"
)

// FromJSON decodes a graph in either encoding. The cloud encoding is
// recognized by its top-level "result" and "values" keys.
func (r *Registry) FromJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to parse encoded graph: %w", err)
	}
	if m, ok := v.(map[string]any); ok {
		_, hasResult := m[serializer.KeyResult]
		_, hasValues := m[serializer.KeyValues]
		if hasResult && hasValues {
			return r.DecodeCloudValue(m)
		}
	}
	return r.Decode(v)
}

// Decode rebuilds a graph from its legacy encoding. Invocations are rebuilt
// exactly as encoded, without promotion, so the result is equal to the graph
// that was encoded.
func (r *Registry) Decode(v any) (any, error) {
	d := &legacyDecoder{reg: r, scope: make(map[string]any)}
	return d.decode(v)
}

type legacyDecoder struct {
	reg   *Registry
	scope map[string]any
}

func (d *legacyDecoder) decode(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, string:
		return x, nil
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			decoded, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			out[i] = decoded
		}
		return out, nil
	case map[string]any:
		return d.decodeMap(x)
	}
	if n, ok := literal.Number(v); ok {
		return n, nil
	}
	return nil, fmt.Errorf("cannot decode %T", v)
}

func (d *legacyDecoder) decodeMap(m map[string]any) (any, error) {
	if name, ok := m[serializer.KeyAlgorithm].(string); ok {
		fn, err := d.reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		return d.invocation(fn, m, serializer.KeyAlgorithm)
	}
	if encodedFn, ok := m[serializer.KeyFunction]; ok {
		decoded, err := d.decode(encodedFn)
		if err != nil {
			return nil, err
		}
		fn, ok := decoded.(*CustomFunction)
		if !ok {
			return nil, fmt.Errorf("invoked value is not a function: %T", decoded)
		}
		return d.invocation(fn, m, serializer.KeyFunction)
	}
	if name, ok := m[serializer.KeyArgumentReference].(string); ok && len(m) == 1 {
		return d.reg.Variable(typeObject, name).Node(), nil
	}

	switch m[serializer.KeyType] {
	case serializer.TypeCompoundValue:
		scope, ok := m[serializer.KeyScope].([]any)
		if !ok {
			return nil, fmt.Errorf("compound value has no scope")
		}
		for _, entry := range scope {
			pair, ok := entry.([]any)
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("malformed scope entry %v", entry)
			}
			name, ok := pair[0].(string)
			if !ok {
				return nil, fmt.Errorf("malformed scope name %v", pair[0])
			}
			decoded, err := d.decode(pair[1])
			if err != nil {
				return nil, err
			}
			d.scope[name] = decoded
		}
		return d.decode(m[serializer.KeyValue])

	case serializer.TypeValueRef:
		name, _ := m[serializer.KeyValue].(string)
		decoded, ok := d.scope[name]
		if !ok {
			return nil, fmt.Errorf("unknown scope reference %q", name)
		}
		return decoded, nil

	case serializer.TypeDictionary:
		entries, ok := m[serializer.KeyValue].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("malformed dictionary %v", m)
		}
		out := make(map[string]any, len(entries))
		for k, item := range entries {
			decoded, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			out[k] = decoded
		}
		return out, nil

	case serializer.TypeFunction:
		names, err := stringList(m[serializer.KeyArgumentNames])
		if err != nil {
			return nil, err
		}
		body, err := d.decode(m[serializer.KeyBody])
		if err != nil {
			return nil, err
		}
		return d.reg.customFunction(names, body)

	case serializer.TypeFloat:
		s, _ := m[serializer.KeyValue].(string)
		return parseNonFinite(s)
	}
	return nil, fmt.Errorf("cannot decode %v", m)
}

func (d *legacyDecoder) invocation(fn Function, m map[string]any, fnKey string) (any, error) {
	args := make(map[string]any, len(m)-1)
	for k, item := range m {
		if k == fnKey {
			continue
		}
		decoded, err := d.decode(item)
		if err != nil {
			return nil, err
		}
		args[k] = decoded
	}
	return d.reg.decodedInvocation(fn, args)
}

// DecodeCloudValue rebuilds a graph from its cloud encoding, optimized or
// not.
func (r *Registry) DecodeCloudValue(m map[string]any) (any, error) {
	result, ok := m[serializer.KeyResult].(string)
	if !ok {
		return nil, fmt.Errorf("cloud value has no result reference")
	}
	values, ok := m[serializer.KeyValues].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cloud value has no value table")
	}
	d := &cloudDecoder{
		reg:      r,
		values:   values,
		decoded:  make(map[string]any),
		visiting: make(map[string]bool),
	}
	return d.ref(result)
}

type cloudDecoder struct {
	reg     *Registry
	values  map[string]any
	decoded map[string]any
	// visiting holds the references currently being decoded.
	visiting map[string]bool
}

func (d *cloudDecoder) ref(name string) (any, error) {
	if v, ok := d.decoded[name]; ok {
		return v, nil
	}
	if d.visiting[name] {
		return nil, fmt.Errorf("cyclic value reference %q", name)
	}
	raw, ok := d.values[name]
	if !ok {
		return nil, fmt.Errorf("unknown value reference %q", name)
	}
	d.visiting[name] = true
	v, err := d.decode(raw)
	delete(d.visiting, name)
	if err != nil {
		return nil, err
	}
	d.decoded[name] = v
	return v, nil
}

func (d *cloudDecoder) decode(raw any) (any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("malformed cloud value %v", raw)
	}

	if v, ok := m[serializer.KeyConstantValue]; ok {
		return d.constant(v)
	}
	if v, ok := m[serializer.KeyIntegerValue].(string); ok {
		return parseInteger(v)
	}
	if name, ok := m[serializer.KeyValueReference].(string); ok {
		return d.ref(name)
	}
	if name, ok := m[serializer.KeyArgumentReference].(string); ok {
		return d.reg.Variable(typeObject, name).Node(), nil
	}
	if arr, ok := m[serializer.KeyArrayValue].(map[string]any); ok {
		items, _ := arr[serializer.KeyValues].([]any)
		out := make([]any, len(items))
		for i, item := range items {
			decoded, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			out[i] = decoded
		}
		return out, nil
	}
	if dict, ok := m[serializer.KeyDictionaryValue].(map[string]any); ok {
		entries, _ := dict[serializer.KeyValues].(map[string]any)
		out := make(map[string]any, len(entries))
		for k, item := range entries {
			decoded, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			out[k] = decoded
		}
		return out, nil
	}
	if def, ok := m[serializer.KeyFunctionDefinitionValue].(map[string]any); ok {
		names, err := stringList(def[serializer.KeyArgumentNames])
		if err != nil {
			return nil, err
		}
		bodyRef, _ := def[serializer.KeyBody].(string)
		body, err := d.ref(bodyRef)
		if err != nil {
			return nil, err
		}
		return d.reg.customFunction(names, body)
	}
	if inv, ok := m[serializer.KeyFunctionInvocationValue].(map[string]any); ok {
		var fn Function
		if name, ok := inv[serializer.KeyFunctionName].(string); ok {
			api, err := d.reg.Lookup(name)
			if err != nil {
				return nil, err
			}
			fn = api
		} else {
			ref, _ := inv[serializer.KeyFunctionReference].(string)
			decoded, err := d.ref(ref)
			if err != nil {
				return nil, err
			}
			custom, ok := decoded.(*CustomFunction)
			if !ok {
				return nil, fmt.Errorf("invoked value is not a function: %T", decoded)
			}
			fn = custom
		}
		encodedArgs, _ := inv[serializer.KeyArguments].(map[string]any)
		args := make(map[string]any, len(encodedArgs))
		for k, item := range encodedArgs {
			decoded, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			args[k] = decoded
		}
		return d.reg.decodedInvocation(fn, args)
	}
	return nil, fmt.Errorf("cannot decode %v", m)
}

// constant decodes a constantValue. Containers inside constants are plain
// JSON values; keys such as "type" or "algorithm" carry no meaning there.
func (d *cloudDecoder) constant(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, string:
		return x, nil
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			decoded, err := d.constant(item)
			if err != nil {
				return nil, err
			}
			out[i] = decoded
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			decoded, err := d.constant(item)
			if err != nil {
				return nil, err
			}
			out[k] = decoded
		}
		return out, nil
	}
	if n, ok := literal.Number(v); ok {
		return n, nil
	}
	return nil, fmt.Errorf("cannot decode constant %v", v)
}

// parseInteger reads an integerValue. Values outside the int64 range are
// returned as *big.Int.
func parseInteger(s string) (any, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	bi, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("malformed integer value %q", s)
	}
	return bi, nil
}

// decodedInvocation builds an invocation node from decoded arguments.
func (r *Registry) decodedInvocation(fn Function, args map[string]any) (any, error) {
	for k, v := range args {
		norm, err := r.normalize(v)
		if err != nil {
			return nil, err
		}
		args[k] = norm
	}
	return r.invoke(fn, args).Node(), nil
}

// customFunction rebuilds a decoded function definition. Parameter types
// are not encoded, so they are declared as Object.
func (r *Registry) customFunction(names []string, body any) (*CustomFunction, error) {
	node, ok := body.(*ComputedObject)
	if !ok {
		return nil, fmt.Errorf("function body is not a computed value: %T", body)
	}
	sig := &catalog.Signature{Returns: node.typeName}
	for _, name := range names {
		sig.Args = append(sig.Args, catalog.Arg{Name: name, Type: typeObject})
	}
	return &CustomFunction{reg: r, sig: sig, body: node}, nil
}

func stringList(v any) ([]string, error) {
	if names, ok := v.([]string); ok {
		return names, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of names, got %T", v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a name, got %T", item)
		}
		out[i] = s
	}
	return out, nil
}

func parseNonFinite(s string) (float64, error) {
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	return 0, fmt.Errorf("unknown special number %q", s)
}
