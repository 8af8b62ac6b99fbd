package serializer

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/vk/eegraph/internal/literal"
)

// legacyEncoder holds the scope built during one Encode call.
type legacyEncoder struct {
	compound bool
	scope    [][2]any
	// byForm maps the canonical JSON of an encoded value to its scope name.
	byForm *formIndex
	// byIdentity short-circuits values already encoded in this call.
	byIdentity map[any]string
}

// Encode produces the legacy encoding of obj.
func Encode(obj any, opts Options) (any, error) {
	e := &legacyEncoder{
		compound:   opts.Compound,
		byForm:     newFormIndex(),
		byIdentity: make(map[any]string),
	}
	value, err := e.encode(obj)
	if err != nil {
		return nil, err
	}
	if !e.compound || len(e.scope) == 0 {
		return value, nil
	}

	if ref, ok := value.(map[string]any); ok && isValueRef(ref) && len(e.scope) == 1 {
		return e.scope[0][1], nil
	}
	scope := make([]any, len(e.scope))
	for i, entry := range e.scope {
		scope[i] = []any{entry[0], entry[1]}
	}
	return map[string]any{
		KeyType:  TypeCompoundValue,
		KeyScope: scope,
		KeyValue: value,
	}, nil
}

func (e *legacyEncoder) encode(obj any) (any, error) {
	key, cacheable := identityKey(obj)
	if e.compound && cacheable {
		if name, ok := e.byIdentity[key]; ok {
			return valueRef(name), nil
		}
	}

	var value any
	switch v := obj.(type) {
	case nil, bool, string:
		return v, nil
	case time.Time:
		value = map[string]any{KeyAlgorithm: DateFunction, KeyValue: literal.Millis(v)}
	case Encodable:
		encoded, err := v.Encode(e.encode)
		if err != nil {
			return nil, err
		}
		if inline(encoded) {
			return encoded, nil
		}
		value = encoded
	case EncodableFunction:
		encoded, err := v.EncodeInvocation(e.encode)
		if err != nil {
			return nil, err
		}
		if inline(encoded) {
			return encoded, nil
		}
		value = encoded
	default:
		if n, ok := literal.Number(obj); ok {
			return legacyNumber(n), nil
		}
		coll, ok := literal.Collection(obj)
		if !ok {
			return nil, &NotImplementedError{Value: obj}
		}
		switch c := coll.(type) {
		case []any:
			items := make([]any, len(c))
			for i, item := range c {
				encoded, err := e.encode(item)
				if err != nil {
					return nil, err
				}
				items[i] = encoded
			}
			value = items
		case map[string]any:
			entries := make(map[string]any, len(c))
			for _, k := range literal.SortedKeys(c) {
				encoded, err := e.encode(c[k])
				if err != nil {
					return nil, err
				}
				entries[k] = encoded
			}
			value = map[string]any{KeyType: TypeDictionary, KeyValue: entries}
		}
	}

	if !e.compound {
		return value, nil
	}

	form, err := canonicalJSON(value)
	if err != nil {
		return nil, err
	}
	name, ok := e.byForm.get(form)
	if !ok {
		name = strconv.Itoa(len(e.scope))
		e.scope = append(e.scope, [2]any{name, value})
		e.byForm.put(form, name)
	}
	if cacheable {
		e.byIdentity[key] = name
	}
	return valueRef(name), nil
}

// inline reports whether an encoded value stays in place instead of being
// given a scope entry. Scalars, references and argument references do.
func inline(v any) bool {
	switch m := v.(type) {
	case []any:
		return false
	case map[string]any:
		if _, ok := m[KeyArgumentReference]; ok && len(m) == 1 {
			return true
		}
		return isValueRef(m) || m[KeyType] == TypeFloat
	}
	return true
}

func legacyNumber(n any) any {
	f, ok := n.(float64)
	if !ok || (!math.IsNaN(f) && !math.IsInf(f, 0)) {
		return n
	}
	return map[string]any{KeyType: TypeFloat, KeyValue: nonFiniteName(f)}
}

func nonFiniteName(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	}
	return "-Infinity"
}

func valueRef(name string) map[string]any {
	return map[string]any{KeyType: TypeValueRef, KeyValue: name}
}

func isValueRef(m map[string]any) bool {
	return len(m) == 2 && m[KeyType] == TypeValueRef
}

// identityKey returns obj as a map key when its dynamic type allows it.
func identityKey(obj any) (any, bool) {
	switch obj.(type) {
	case nil, bool, string:
		return nil, false
	}
	t := reflect.TypeOf(obj)
	if !t.Comparable() {
		return nil, false
	}
	// Structs and arrays are comparable by type but may still hold
	// interface fields with incomparable values.
	switch t.Kind() {
	case reflect.Struct, reflect.Array, reflect.Interface:
		if !reflect.ValueOf(obj).Comparable() {
			return nil, false
		}
	}
	return obj, true
}

// canonicalJSON renders an encoded value with sorted keys.
func canonicalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
