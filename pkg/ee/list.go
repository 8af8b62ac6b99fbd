package ee

import "github.com/vk/eegraph/internal/literal"

// List is a list graph value.
type List struct{ *ComputedObject }

// NewList creates a List from a Go slice or array, or casts a computed
// value. Elements may themselves be graph values.
func (r *Registry) NewList(v any) (List, error) {
	if o, ok := v.(Object); ok {
		if o.Node() == nil {
			return List{}, &ArgumentTypeError{Func: TypeList, Expected: TypeList, Value: v}
		}
		return List{o.Node().cast(TypeList)}, nil
	}
	if coll, ok := literal.Collection(v); ok {
		if items, ok := coll.([]any); ok {
			norm, err := r.normalize(items)
			if err == nil {
				return List{r.literalNode(TypeList, norm)}, nil
			}
		}
	}
	return List{}, &ArgumentTypeError{Func: TypeList, Expected: TypeList, Value: v}
}

// Get returns the element at index.
func (l List) Get(index any) (Object, error) {
	return l.Call("get", index)
}

// Size returns the number of elements.
func (l List) Size() (Number, error) {
	return as[Number](l.Call("size"))
}

// Map applies fn to every element. fn may be a *CustomFunction, an
// operation name or a Func1.
func (l List) Map(fn any) (List, error) {
	return as[List](l.Call("map", fn))
}

// Cat appends the elements of other.
func (l List) Cat(other any) (List, error) {
	return as[List](l.Call("cat", other))
}
