package serializer

import (
	"fmt"
	"strconv"

	"github.com/vk/eegraph/internal/literal"
)

// maxInlineDepth bounds how deeply single-use values are nested into their
// parents.
const maxInlineDepth = 50

type optimizer struct {
	values  map[string]any
	counts  map[string]int
	visited map[string]bool
	mapped  map[string]string
	out     map[string]any
}

// Optimize rewrites an unoptimized cloud value table. Constants, argument
// references and values referenced exactly once are inlined into their
// parent. Values referenced more than once, and values reached through
// functionReference or a function body, keep a table entry. Surviving
// entries are renumbered in the order they are reached from the result,
// which therefore is always "0".
func Optimize(result string, values map[string]any) (map[string]any, error) {
	o := &optimizer{
		values:  values,
		counts:  make(map[string]int),
		visited: make(map[string]bool),
		mapped:  make(map[string]string),
		out:     make(map[string]any),
	}
	if err := o.countRef(result); err != nil {
		return nil, err
	}
	root, err := o.pin(result)
	if err != nil {
		return nil, err
	}
	return map[string]any{KeyResult: root, KeyValues: o.out}, nil
}

func (o *optimizer) lookup(ref string) (map[string]any, error) {
	v, ok := o.values[ref].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("dangling value reference %q", ref)
	}
	return v, nil
}

func (o *optimizer) countRef(ref string) error {
	if o.visited[ref] {
		return nil
	}
	o.visited[ref] = true
	v, err := o.lookup(ref)
	if err != nil {
		return err
	}
	return o.count(v)
}

func (o *optimizer) count(v map[string]any) error {
	if ref, ok := v[KeyValueReference].(string); ok {
		o.counts[ref]++
		return o.countRef(ref)
	}
	if arr, ok := v[KeyArrayValue].(map[string]any); ok {
		items, _ := arr[KeyValues].([]any)
		for _, item := range items {
			if err := o.countAny(item); err != nil {
				return err
			}
		}
		return nil
	}
	if dict, ok := v[KeyDictionaryValue].(map[string]any); ok {
		entries, _ := dict[KeyValues].(map[string]any)
		for _, item := range entries {
			if err := o.countAny(item); err != nil {
				return err
			}
		}
		return nil
	}
	if def, ok := v[KeyFunctionDefinitionValue].(map[string]any); ok {
		body, _ := def[KeyBody].(string)
		return o.countRef(body)
	}
	if inv, ok := v[KeyFunctionInvocationValue].(map[string]any); ok {
		if ref, ok := inv[KeyFunctionReference].(string); ok {
			if err := o.countRef(ref); err != nil {
				return err
			}
		}
		args, _ := inv[KeyArguments].(map[string]any)
		for _, arg := range args {
			if err := o.countAny(arg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *optimizer) countAny(v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("malformed cloud value %v", v)
	}
	return o.count(m)
}

// pin gives ref a table entry under its new key.
func (o *optimizer) pin(ref string) (string, error) {
	if key, ok := o.mapped[ref]; ok {
		return key, nil
	}
	key := strconv.Itoa(len(o.mapped))
	o.mapped[ref] = key

	v, err := o.lookup(ref)
	if err != nil {
		return "", err
	}
	optimized, err := o.optimize(v, 0)
	if err != nil {
		return "", err
	}
	o.out[key] = optimized
	return key, nil
}

func (o *optimizer) optimize(v map[string]any, depth int) (map[string]any, error) {
	switch {
	case has(v, KeyConstantValue), has(v, KeyIntegerValue), has(v, KeyArgumentReference):
		return v, nil

	case has(v, KeyValueReference):
		ref, _ := v[KeyValueReference].(string)
		target, err := o.lookup(ref)
		if err != nil {
			return nil, err
		}
		if depth < maxInlineDepth && (o.counts[ref] == 1 || isLeaf(target)) {
			return o.optimize(target, depth)
		}
		key, err := o.pin(ref)
		if err != nil {
			return nil, err
		}
		return valueReference(key), nil

	case has(v, KeyArrayValue):
		arr, _ := v[KeyArrayValue].(map[string]any)
		items, _ := arr[KeyValues].([]any)
		out := make([]any, len(items))
		for i, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("malformed array element %v", item)
			}
			optimized, err := o.optimize(m, depth+3)
			if err != nil {
				return nil, err
			}
			out[i] = optimized
		}
		return map[string]any{KeyArrayValue: map[string]any{KeyValues: out}}, nil

	case has(v, KeyDictionaryValue):
		dict, _ := v[KeyDictionaryValue].(map[string]any)
		entries, _ := dict[KeyValues].(map[string]any)
		out := make(map[string]any, len(entries))
		for _, k := range literal.SortedKeys(entries) {
			m, ok := entries[k].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("malformed dictionary entry %q", k)
			}
			optimized, err := o.optimize(m, depth+3)
			if err != nil {
				return nil, err
			}
			out[k] = optimized
		}
		return map[string]any{KeyDictionaryValue: map[string]any{KeyValues: out}}, nil

	case has(v, KeyFunctionDefinitionValue):
		def, _ := v[KeyFunctionDefinitionValue].(map[string]any)
		body, _ := def[KeyBody].(string)
		key, err := o.pin(body)
		if err != nil {
			return nil, err
		}
		return map[string]any{KeyFunctionDefinitionValue: map[string]any{
			KeyArgumentNames: def[KeyArgumentNames],
			KeyBody:          key,
		}}, nil

	case has(v, KeyFunctionInvocationValue):
		inv, _ := v[KeyFunctionInvocationValue].(map[string]any)
		out := make(map[string]any, 2)
		if name, ok := inv[KeyFunctionName]; ok {
			out[KeyFunctionName] = name
		} else {
			ref, _ := inv[KeyFunctionReference].(string)
			key, err := o.pin(ref)
			if err != nil {
				return nil, err
			}
			out[KeyFunctionReference] = key
		}
		args, _ := inv[KeyArguments].(map[string]any)
		optimizedArgs := make(map[string]any, len(args))
		for _, k := range literal.SortedKeys(args) {
			m, ok := args[k].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("malformed argument %q", k)
			}
			optimized, err := o.optimize(m, depth+3)
			if err != nil {
				return nil, err
			}
			optimizedArgs[k] = optimized
		}
		out[KeyArguments] = optimizedArgs
		return map[string]any{KeyFunctionInvocationValue: out}, nil
	}
	return nil, fmt.Errorf("unknown cloud value %v", v)
}

// isLeaf reports whether v is cheaper to repeat than to reference.
func isLeaf(v map[string]any) bool {
	return has(v, KeyConstantValue) || has(v, KeyIntegerValue) || has(v, KeyArgumentReference)
}

func has(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}
