package ee

// Number is a numeric graph value.
type Number struct{ *ComputedObject }

// NewNumber creates a Number from a Go number or casts a computed value.
func (r *Registry) NewNumber(v any) (Number, error) {
	if o, ok := v.(Object); ok && o.Node() != nil {
		return Number{o.Node().cast(TypeNumber)}, nil
	}
	n, ok := numberLiteral(v)
	if !ok {
		return Number{}, &ArgumentTypeError{Func: TypeNumber, Expected: TypeNumber, Value: v}
	}
	return Number{r.literalNode(TypeNumber, n)}, nil
}

// Add returns n + other.
func (n Number) Add(other any) (Number, error) {
	return as[Number](n.Call("add", other))
}

// Subtract returns n - other.
func (n Number) Subtract(other any) (Number, error) {
	return as[Number](n.Call("subtract", other))
}

// Multiply returns n * other.
func (n Number) Multiply(other any) (Number, error) {
	return as[Number](n.Call("multiply", other))
}

// Divide returns n / other.
func (n Number) Divide(other any) (Number, error) {
	return as[Number](n.Call("divide", other))
}
