package ee

// String is a text graph value.
type String struct{ *ComputedObject }

// NewString creates a String from a Go string. A computed value of another
// type is converted with the String constructor operation.
func (r *Registry) NewString(v any) (String, error) {
	switch x := v.(type) {
	case string:
		return String{r.literalNode(TypeString, x)}, nil
	case Object:
		if x.Node() != nil {
			return String{r.constructed(TypeString, x, "")}, nil
		}
	}
	return String{}, &ArgumentTypeError{Func: TypeString, Expected: TypeString, Value: v}
}

// Cat appends other.
func (s String) Cat(other any) (String, error) {
	return as[String](s.Call("cat", other))
}

// Length returns the number of characters.
func (s String) Length() (Number, error) {
	return as[Number](s.Call("length"))
}
