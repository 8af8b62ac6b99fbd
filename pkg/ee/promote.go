package ee

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vk/eegraph/internal/literal"
	"github.com/vk/eegraph/pkg/catalog"
)

// Func1 builds a one-parameter custom function body.
type Func1 func(Object) (Object, error)

// Func2 builds a two-parameter custom function body.
type Func2 func(Object, Object) (Object, error)

func numberLiteral(v any) (any, bool) {
	return literal.Number(v)
}

// promoteArgs checks args against sig and promotes every supplied value to
// its declared type. nil values count as omitted.
func (r *Registry) promoteArgs(sig *catalog.Signature, args map[string]any) (map[string]any, error) {
	var unknown []string
	for name := range args {
		if _, ok := sig.Arg(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnrecognizedArgumentError{Func: sig.Name, Params: unknown}
	}

	out := make(map[string]any, len(args))
	for _, a := range sig.Args {
		v := args[a.Name]
		if isAbsent(v) {
			if !a.Optional {
				return nil, &MissingArgumentError{Func: sig.Name, Param: a.Name}
			}
			continue
		}
		p, err := r.promote(v, a.Type)
		if err != nil {
			var typeErr *ArgumentTypeError
			if errors.As(err, &typeErr) {
				return nil, &ArgumentTypeError{Func: sig.Name, Param: a.Name, Expected: a.Type, Value: v}
			}
			return nil, fmt.Errorf("%s: argument %q: %w", sig.Name, a.Name, err)
		}
		out[a.Name] = p
	}
	return out, nil
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	if o, ok := v.(Object); ok && o.Node() == nil {
		return true
	}
	return false
}

// promote converts v to a value of typeName suitable for storing in an
// argument map: a node, a custom function or a normalized literal.
func (r *Registry) promote(v any, typeName string) (any, error) {
	switch normalizeType(typeName) {
	case typeAlgorithm, typeFunction:
		return r.promoteFunction(v)
	case TypeNumber:
		n, err := r.NewNumber(v)
		return nodeOf(n, err)
	case TypeString:
		s, err := r.NewString(v)
		return nodeOf(s, err)
	case TypeList:
		l, err := r.NewList(v)
		return nodeOf(l, err)
	case TypeDictionary:
		d, err := r.NewDictionary(v)
		return nodeOf(d, err)
	case TypeDate:
		d, err := r.NewDate(v)
		return nodeOf(d, err)
	case TypeJoin:
		j, err := r.NewJoin(v)
		return nodeOf(j, err)
	case TypeConfusionMatrix:
		m, err := r.NewConfusionMatrix(v, nil)
		return nodeOf(m, err)
	}

	// Types without wrappers take computed values as they are and plain
	// values as literals.
	norm, err := r.normalize(v)
	if err != nil {
		return nil, &ArgumentTypeError{Expected: typeName, Value: v}
	}
	return norm, nil
}

func nodeOf(o Object, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return o.Node(), nil
}

// promoteFunction turns v into a *CustomFunction.
func (r *Registry) promoteFunction(v any) (any, error) {
	switch f := v.(type) {
	case *CustomFunction:
		return f, nil
	case *ApiFunction:
		return r.apiFunctionValue(f)
	case string:
		fn, err := r.Lookup(f)
		if err != nil {
			return nil, err
		}
		return r.apiFunctionValue(fn)
	case Func1:
		return r.Bind(objectSignature(1), func(args ...Object) (Object, error) { return f(args[0]) })
	case func(Object) (Object, error):
		return r.Bind(objectSignature(1), func(args ...Object) (Object, error) { return f(args[0]) })
	case Func2:
		return r.Bind(objectSignature(2), func(args ...Object) (Object, error) { return f(args[0], args[1]) })
	case func(Object, Object) (Object, error):
		return r.Bind(objectSignature(2), func(args ...Object) (Object, error) { return f(args[0], args[1]) })
	}
	return nil, &ArgumentTypeError{Expected: typeAlgorithm, Value: v}
}

// objectSignature declares n unnamed Object parameters.
func objectSignature(n int) *catalog.Signature {
	sig := &catalog.Signature{Returns: typeObject, Args: make([]catalog.Arg, n)}
	for i := range sig.Args {
		sig.Args[i].Type = typeObject
	}
	return sig
}

// apiFunctionValue wraps an operation as a custom function that forwards
// its parameters, so it can be passed where a function value is expected.
func (r *Registry) apiFunctionValue(fn *ApiFunction) (*CustomFunction, error) {
	return r.Bind(fn.sig, func(args ...Object) (Object, error) {
		named := make(map[string]any, len(args))
		for i, a := range args {
			named[fn.sig.Args[i].Name] = a.Node()
		}
		return r.invoke(fn, named), nil
	})
}

// normalize canonicalizes a plain value for storage in the graph. Graph
// values are replaced by their nodes, numbers are canonicalized and
// collections are converted to []any and map[string]any.
func (r *Registry) normalize(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, string, time.Time:
		return x, nil
	case *CustomFunction:
		return x, nil
	case Object:
		if x.Node() == nil {
			return nil, nil
		}
		return x.Node(), nil
	}
	if n, ok := literal.Number(v); ok {
		return n, nil
	}

	coll, ok := literal.Collection(v)
	if !ok {
		return nil, &ArgumentTypeError{Expected: "literal", Value: v}
	}
	switch c := coll.(type) {
	case []any:
		out := make([]any, len(c))
		for i, item := range c {
			norm, err := r.normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = norm
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(c))
		for k, item := range c {
			norm, err := r.normalize(item)
			if err != nil {
				return nil, err
			}
			out[k] = norm
		}
		return out, nil
	}
	return nil, &ArgumentTypeError{Expected: "literal", Value: v}
}
