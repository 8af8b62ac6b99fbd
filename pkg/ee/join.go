package ee

// Join describes how two collections are joined.
type Join struct{ *ComputedObject }

// NewJoin casts a computed value to Join. Joins have no literal form; they
// are built with operations such as Join.inner.
func (r *Registry) NewJoin(v any) (Join, error) {
	o, ok := v.(Object)
	if !ok || o.Node() == nil {
		return Join{}, &ArgumentTypeError{Func: TypeJoin, Expected: TypeJoin, Value: v}
	}
	return Join{o.Node().cast(TypeJoin)}, nil
}

// Apply joins primary with secondary, matching elements with condition.
func (j Join) Apply(primary, secondary, condition any) (Object, error) {
	return j.Call("apply", primary, secondary, condition)
}
