package ee

import (
	"errors"
	"fmt"

	"github.com/vk/eegraph/internal/literal"
	"github.com/vk/eegraph/pkg/catalog"
	"github.com/vk/eegraph/pkg/ee/serializer"
)

// BuildFunc builds a custom function body from its parameter placeholders.
// It may be called more than once and must not have side effects.
type BuildFunc func(args ...Object) (Object, error)

// errNilBody is returned when a builder produces no node.
var errNilBody = errors.New("custom function body is nil")

// CustomFunction is a user-defined function whose body is a graph over its
// parameter placeholders.
type CustomFunction struct {
	reg  *Registry
	sig  *catalog.Signature
	body *ComputedObject
}

// Bind creates a custom function with the given signature.
//
// The builder is called twice. The first call, with unnamed placeholders,
// reveals the body's nesting depth: 1 + the deepest custom function the body
// contains. The second call uses placeholders named
// `_MAPPING_VAR_<depth>_<index>`, so a function nested in another never
// shares parameter names with it. Parameters the signature already names
// keep their names.
func (r *Registry) Bind(sig *catalog.Signature, build BuildFunc) (*CustomFunction, error) {
	if sig == nil {
		return nil, fmt.Errorf("custom function signature is nil")
	}

	draft, err := r.buildBody(sig, build)
	if err != nil {
		return nil, err
	}
	depth := 1 + newDepthWalker().node(draft)

	named := *sig
	named.Args = make([]catalog.Arg, len(sig.Args))
	copy(named.Args, sig.Args)
	for i := range named.Args {
		if named.Args[i].Name == "" {
			named.Args[i].Name = fmt.Sprintf("_MAPPING_VAR_%d_%d", depth, i)
		}
	}

	body, err := r.buildBody(&named, build)
	if err != nil {
		return nil, err
	}
	return &CustomFunction{reg: r, sig: &named, body: body}, nil
}

func (r *Registry) buildBody(sig *catalog.Signature, build BuildFunc) (*ComputedObject, error) {
	vars := make([]Object, len(sig.Args))
	for i, a := range sig.Args {
		vars[i] = r.Variable(a.Type, a.Name)
	}
	out, err := build(vars...)
	if err != nil {
		return nil, err
	}
	if out == nil || out.Node() == nil {
		return nil, errNilBody
	}
	return out.Node(), nil
}

// Signature returns the declared signature with generated parameter names
// filled in.
func (f *CustomFunction) Signature() *catalog.Signature { return f.sig }

// Body returns the root node of the function body.
func (f *CustomFunction) Body() *ComputedObject { return f.body }

// ArgNames returns the parameter names in order.
func (f *CustomFunction) ArgNames() []string { return f.sig.ArgNames() }

// Call invokes the function with positional arguments.
func (f *CustomFunction) Call(args ...any) (Object, error) {
	return f.reg.CallFunction(f, args...)
}

// Encode implements serializer.Encodable.
func (f *CustomFunction) Encode(enc serializer.Encoder) (any, error) {
	body, err := enc(f.body)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		serializer.KeyType:          serializer.TypeFunction,
		serializer.KeyArgumentNames: f.ArgNames(),
		serializer.KeyBody:          body,
	}, nil
}

// EncodeCloudValue implements serializer.Encodable.
func (f *CustomFunction) EncodeCloudValue(enc serializer.CloudEncoder) (map[string]any, error) {
	encoded, err := enc(f.body)
	if err != nil {
		return nil, err
	}
	body, err := serializer.Reference(encoded)
	if err != nil {
		return nil, err
	}
	return map[string]any{serializer.KeyFunctionDefinitionValue: map[string]any{
		serializer.KeyArgumentNames: f.ArgNames(),
		serializer.KeyBody:          body,
	}}, nil
}

// EncodeInvocation implements serializer.EncodableFunction.
func (f *CustomFunction) EncodeInvocation(enc serializer.Encoder) (any, error) {
	return enc(f)
}

// EncodeCloudInvocation implements serializer.EncodableFunction.
func (f *CustomFunction) EncodeCloudInvocation(enc serializer.CloudEncoder) (map[string]any, error) {
	encoded, err := enc(f)
	if err != nil {
		return nil, err
	}
	ref, err := serializer.Reference(encoded)
	if err != nil {
		return nil, err
	}
	return map[string]any{serializer.KeyFunctionReference: ref}, nil
}

// depthWalker measures custom function nesting over a DAG, visiting each
// node once.
type depthWalker struct {
	nodes map[*ComputedObject]int
	funcs map[*CustomFunction]int
}

func newDepthWalker() *depthWalker {
	return &depthWalker{
		nodes: make(map[*ComputedObject]int),
		funcs: make(map[*CustomFunction]int),
	}
}

// node returns the depth of the deepest custom function reachable from n.
func (w *depthWalker) node(n *ComputedObject) int {
	if d, ok := w.nodes[n]; ok {
		return d
	}
	w.nodes[n] = 0

	depth := 0
	if f, ok := n.fn.(*CustomFunction); ok {
		depth = w.function(f)
	}
	if n.isLit {
		depth = max(depth, w.value(n.literal))
	}
	for _, k := range literal.SortedKeys(n.args) {
		depth = max(depth, w.value(n.args[k]))
	}
	w.nodes[n] = depth
	return depth
}

func (w *depthWalker) function(f *CustomFunction) int {
	if d, ok := w.funcs[f]; ok {
		return d
	}
	d := 1 + w.node(f.body)
	w.funcs[f] = d
	return d
}

func (w *depthWalker) value(v any) int {
	switch x := v.(type) {
	case *ComputedObject:
		return w.node(x)
	case *CustomFunction:
		return w.function(x)
	case []any:
		depth := 0
		for _, item := range x {
			depth = max(depth, w.value(item))
		}
		return depth
	case map[string]any:
		depth := 0
		for _, item := range x {
			depth = max(depth, w.value(item))
		}
		return depth
	}
	return 0
}
