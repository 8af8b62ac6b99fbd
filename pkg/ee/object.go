package ee

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/vk/eegraph/internal/literal"
	"github.com/vk/eegraph/pkg/ee/serializer"
)

// Object is implemented by every graph value: *ComputedObject and the typed
// wrappers embedding it.
type Object interface {
	Node() *ComputedObject
}

// ComputedObject is a graph node. It has exactly one of three shapes:
//
//   - a literal, holding a canonicalized Go value;
//   - a variable, a named placeholder for a custom function parameter;
//   - an invocation of a Function with bound arguments.
//
// Nodes are never modified after construction.
type ComputedObject struct {
	reg      *Registry
	typeName string

	fn   Function
	args map[string]any

	varName string
	isVar   bool

	literal any
	isLit   bool

	canonOnce sync.Once
	canon     string
	canonErr  error
}

var (
	_ Object               = (*ComputedObject)(nil)
	_ serializer.Encodable = (*ComputedObject)(nil)
	_ serializer.Encodable = (*CustomFunction)(nil)
	_ Function             = (*CustomFunction)(nil)
	_ Function             = (*ApiFunction)(nil)
)

// Node returns the node itself.
func (c *ComputedObject) Node() *ComputedObject { return c }

// TypeName is the catalog type the node evaluates to.
func (c *ComputedObject) TypeName() string { return c.typeName }

// Registry returns the registry the node was built with.
func (c *ComputedObject) Registry() *Registry { return c.reg }

// Func returns the invoked function, or nil for literals and variables.
func (c *ComputedObject) Func() Function { return c.fn }

// Args returns a copy of the bound arguments. Values are literals,
// *ComputedObject or *CustomFunction.
func (c *ComputedObject) Args() map[string]any {
	if c.args == nil {
		return nil
	}
	out := make(map[string]any, len(c.args))
	for k, v := range c.args {
		out[k] = v
	}
	return out
}

// Arg returns one bound argument.
func (c *ComputedObject) Arg(name string) (any, bool) {
	v, ok := c.args[name]
	return v, ok
}

// VarName returns the placeholder name of a variable node.
func (c *ComputedObject) VarName() string { return c.varName }

// IsVariable reports whether the node is a custom function parameter.
func (c *ComputedObject) IsVariable() bool { return c.isVar }

// IsLiteral reports whether the node wraps a plain value.
func (c *ComputedObject) IsLiteral() bool { return c.isLit }

// Literal returns the wrapped value of a literal node.
func (c *ComputedObject) Literal() (any, bool) { return c.literal, c.isLit }

// cast returns a node with the same content and a different declared type.
func (c *ComputedObject) cast(typeName string) *ComputedObject {
	if c.typeName == typeName {
		return c
	}
	return &ComputedObject{
		reg:      c.reg,
		typeName: typeName,
		fn:       c.fn,
		args:     c.args,
		varName:  c.varName,
		isVar:    c.isVar,
		literal:  c.literal,
		isLit:    c.isLit,
	}
}

// Encode implements serializer.Encodable.
func (c *ComputedObject) Encode(enc serializer.Encoder) (any, error) {
	switch {
	case c.isVar:
		return map[string]any{serializer.KeyArgumentReference: c.varName}, nil
	case c.isLit:
		return enc(c.literal)
	}

	fn, err := c.fn.EncodeInvocation(enc)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(c.args)+1)
	if name, ok := fn.(string); ok {
		out[serializer.KeyAlgorithm] = name
	} else {
		out[serializer.KeyFunction] = fn
	}
	for _, k := range literal.SortedKeys(c.args) {
		if c.args[k] == nil {
			continue
		}
		v, err := enc(c.args[k])
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// EncodeCloudValue implements serializer.Encodable.
func (c *ComputedObject) EncodeCloudValue(enc serializer.CloudEncoder) (map[string]any, error) {
	switch {
	case c.isVar:
		return map[string]any{serializer.KeyArgumentReference: c.varName}, nil
	case c.isLit:
		return serializer.CloudLiteral(c.literal, enc)
	}

	inv, err := c.fn.EncodeCloudInvocation(enc)
	if err != nil {
		return nil, err
	}
	args := make(map[string]any, len(c.args))
	for _, k := range literal.SortedKeys(c.args) {
		if c.args[k] == nil {
			continue
		}
		v, err := enc(c.args[k])
		if err != nil {
			return nil, err
		}
		args[k] = v
	}
	inv[serializer.KeyArguments] = args
	return map[string]any{serializer.KeyFunctionInvocationValue: inv}, nil
}

// Canonical returns the canonical encoding of the graph rooted at c.
func (c *ComputedObject) Canonical() (string, error) {
	c.canonOnce.Do(func() {
		c.canon, c.canonErr = serializer.Canonical(c)
	})
	return c.canon, c.canonErr
}

// Equal reports whether other describes a structurally equal graph. The
// declared type is not compared, so wrappers of different types around the
// same node are equal: a Number and a List cast from it compare equal and
// have the same Hash.
func (c *ComputedObject) Equal(other Object) bool {
	if c == nil || other == nil {
		return false
	}
	o := other.Node()
	if o == nil {
		return false
	}
	if c == o {
		return true
	}
	a, err := c.Canonical()
	if err != nil {
		return false
	}
	b, err := o.Canonical()
	if err != nil {
		return false
	}
	return a == b
}

// Hash is consistent with Equal. It is 0 for graphs that cannot be encoded.
func (c *ComputedObject) Hash() uint64 {
	canon, err := c.Canonical()
	if err != nil {
		return 0
	}
	return xxhash.Sum64String(canon)
}

// Serialize returns the legacy JSON encoding of the graph.
func (c *ComputedObject) Serialize(pretty bool) (string, error) {
	return serializer.ToJSON(c, serializer.DefaultOptions(), pretty)
}

// String renders the node for debugging.
func (c *ComputedObject) String() string {
	out, err := serializer.ToJSON(c, serializer.Options{}, false)
	if err != nil {
		out = "<" + err.Error() + ">"
	}
	return fmt.Sprintf("ee.%s(%s)", c.typeName, out)
}

// Call invokes a method of the node's type with the node as first argument.
func (c *ComputedObject) Call(method string, args ...any) (Object, error) {
	fn, err := c.reg.method(c.typeName, method)
	if err != nil {
		return nil, err
	}
	return c.reg.CallFunction(fn, append([]any{c}, args...)...)
}

// CallNamed is Call with keyword arguments. The node is bound to the first
// parameter.
func (c *ComputedObject) CallNamed(method string, args map[string]any) (Object, error) {
	fn, err := c.reg.method(c.typeName, method)
	if err != nil {
		return nil, err
	}
	sig := fn.Signature()
	if len(sig.Args) == 0 {
		return nil, &TooManyArgumentsError{Func: sig.Name, Max: 0, Got: 1}
	}
	named := make(map[string]any, len(args)+1)
	for k, v := range args {
		named[k] = v
	}
	named[sig.Args[0].Name] = c
	return c.reg.ApplyFunction(fn, named)
}

// as converts a dispatch result to the wrapper type T.
func as[T Object](o Object, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	t, ok := o.(T)
	if !ok {
		return zero, fmt.Errorf("expected a %T result, got %s", zero, describe(o))
	}
	return t, nil
}

// Must panics if err is non-nil. It is meant for examples and tests.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
