package ee

import "github.com/vk/eegraph/internal/literal"

// Dictionary is a string-keyed graph value.
type Dictionary struct{ *ComputedObject }

// NewDictionary creates a Dictionary from a Go map with string keys. A
// computed value of another type is converted with the Dictionary
// constructor operation. nil yields an empty dictionary.
func (r *Registry) NewDictionary(v any) (Dictionary, error) {
	if v == nil {
		return Dictionary{r.literalNode(TypeDictionary, map[string]any{})}, nil
	}
	if o, ok := v.(Object); ok {
		if o.Node() == nil {
			return Dictionary{}, &ArgumentTypeError{Func: TypeDictionary, Expected: TypeDictionary, Value: v}
		}
		return Dictionary{r.constructed(TypeDictionary, o, "")}, nil
	}
	if coll, ok := literal.Collection(v); ok {
		if entries, ok := coll.(map[string]any); ok {
			norm, err := r.normalize(entries)
			if err == nil {
				return Dictionary{r.literalNode(TypeDictionary, norm)}, nil
			}
		}
	}
	return Dictionary{}, &ArgumentTypeError{Func: TypeDictionary, Expected: TypeDictionary, Value: v}
}

// Get returns the value stored under key.
func (d Dictionary) Get(key any) (Object, error) {
	return d.Call("get", key)
}

// Keys returns the keys as a List.
func (d Dictionary) Keys() (List, error) {
	return as[List](d.Call("keys"))
}

// Set returns a copy with key bound to value.
func (d Dictionary) Set(key, value any) (Dictionary, error) {
	return as[Dictionary](d.Call("set", key, value))
}
