package serializer

import (
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/vk/eegraph/internal/literal"
)

type cloudEncoder struct {
	values     map[string]any
	byForm     *formIndex
	byIdentity map[any]string
}

// EncodeCloudValue produces the cloud encoding of obj. The result always has
// the {"result": key, "values": {...}} shape; opts.Optimize decides whether
// single-use values are inlined.
func EncodeCloudValue(obj any, opts Options) (map[string]any, error) {
	e := &cloudEncoder{
		values:     make(map[string]any),
		byForm:     newFormIndex(),
		byIdentity: make(map[any]string),
	}
	root, err := e.encode(obj)
	if err != nil {
		return nil, err
	}
	ref, err := Reference(root)
	if err != nil {
		return nil, err
	}
	if opts.Optimize {
		return Optimize(ref, e.values)
	}
	return map[string]any{KeyResult: ref, KeyValues: e.values}, nil
}

func (e *cloudEncoder) encode(obj any) (map[string]any, error) {
	key, cacheable := identityKey(obj)
	if cacheable {
		if name, ok := e.byIdentity[key]; ok {
			return valueReference(name), nil
		}
	}

	value, err := CloudLiteral(obj, e.encode)
	if err != nil {
		return nil, err
	}

	form, err := canonicalJSON(value)
	if err != nil {
		return nil, err
	}
	name, ok := e.byForm.get(form)
	if !ok {
		name = strconv.Itoa(len(e.values))
		e.values[name] = value
		e.byForm.put(form, name)
	}
	if cacheable {
		e.byIdentity[key] = name
	}
	return valueReference(name), nil
}

// CloudLiteral encodes obj one level deep, using enc for anything nested.
// Wrappers around literal values use it to encode exactly as the raw value
// would be.
func CloudLiteral(obj any, enc CloudEncoder) (map[string]any, error) {
	switch v := obj.(type) {
	case nil, bool, string:
		return constantValue(v), nil
	case time.Time:
		millis, err := enc(literal.Millis(v))
		if err != nil {
			return nil, err
		}
		return map[string]any{KeyFunctionInvocationValue: map[string]any{
			KeyFunctionName: DateFunction,
			KeyArguments:    map[string]any{"value": millis},
		}}, nil
	case Encodable:
		return v.EncodeCloudValue(enc)
	}

	if n, ok := literal.Number(obj); ok {
		return cloudNumber(n), nil
	}
	coll, ok := literal.Collection(obj)
	if !ok {
		return nil, &NotImplementedError{Value: obj}
	}
	switch c := coll.(type) {
	case []any:
		items := make([]any, len(c))
		for i, item := range c {
			encoded, err := enc(item)
			if err != nil {
				return nil, err
			}
			items[i] = encoded
		}
		return map[string]any{KeyArrayValue: map[string]any{KeyValues: items}}, nil
	case map[string]any:
		entries := make(map[string]any, len(c))
		for _, k := range literal.SortedKeys(c) {
			encoded, err := enc(c[k])
			if err != nil {
				return nil, err
			}
			entries[k] = encoded
		}
		return map[string]any{KeyDictionaryValue: map[string]any{KeyValues: entries}}, nil
	}
	return nil, &NotImplementedError{Value: obj}
}

func cloudNumber(n any) map[string]any {
	switch x := n.(type) {
	case int64:
		if !literal.IsSafeInteger(x) {
			return map[string]any{KeyIntegerValue: strconv.FormatInt(x, 10)}
		}
	case *big.Int:
		return map[string]any{KeyIntegerValue: x.String()}
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return constantValue(nonFiniteName(x))
		}
	}
	return constantValue(n)
}

func constantValue(v any) map[string]any {
	return map[string]any{KeyConstantValue: v}
}

func valueReference(name string) map[string]any {
	return map[string]any{KeyValueReference: name}
}
