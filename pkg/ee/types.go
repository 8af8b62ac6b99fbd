package ee

import (
	"strings"

	"github.com/vk/eegraph/internal/literal"
)

// Type names with Go wrapper types.
const (
	TypeNumber          = "Number"
	TypeString          = "String"
	TypeList            = "List"
	TypeDictionary      = "Dictionary"
	TypeDate            = "Date"
	TypeJoin            = "Join"
	TypeConfusionMatrix = "ConfusionMatrix"
)

// Parameter types that accept functions.
const (
	typeAlgorithm = "Algorithm"
	typeFunction  = "Function"
	typeObject    = "Object"
)

// normalizeType strips type parameters and folds the numeric types into
// Number.
func normalizeType(name string) string {
	if i := strings.IndexByte(name, '<'); i > 0 {
		name = name[:i]
	}
	if literal.IsNumberType(name) {
		return TypeNumber
	}
	return name
}

// wrap returns node as the wrapper type of its declared type.
func (r *Registry) wrap(node *ComputedObject) Object {
	switch node.typeName {
	case TypeNumber:
		return Number{node}
	case TypeString:
		return String{node}
	case TypeList:
		return List{node}
	case TypeDictionary:
		return Dictionary{node}
	case TypeDate:
		return Date{node}
	case TypeJoin:
		return Join{node}
	case TypeConfusionMatrix:
		return ConfusionMatrix{node}
	}
	return node
}

// constructed converts v to a node of typeName using a constructor
// operation when the catalog has one, and a cast otherwise. An object
// already declaring typeName is returned unchanged.
func (r *Registry) constructed(typeName string, v Object, arg string) *ComputedObject {
	node := v.Node()
	if node.typeName == typeName {
		return node
	}
	fn, err := r.Lookup(typeName)
	if err != nil || len(fn.sig.Args) == 0 {
		return node.cast(typeName)
	}
	if arg == "" {
		arg = fn.sig.Args[0].Name
	}
	return r.invoke(fn, map[string]any{arg: node}).Node()
}

func (r *Registry) literalNode(typeName string, v any) *ComputedObject {
	return &ComputedObject{reg: r, typeName: typeName, literal: v, isLit: true}
}

// NewObject creates a node of an arbitrary type. Objects are cast; plain
// values become literals.
func (r *Registry) NewObject(typeName string, v any) (Object, error) {
	typeName = normalizeType(typeName)
	switch typeName {
	case TypeNumber:
		return r.NewNumber(v)
	case TypeString:
		return r.NewString(v)
	case TypeList:
		return r.NewList(v)
	case TypeDictionary:
		return r.NewDictionary(v)
	case TypeDate:
		return r.NewDate(v)
	case TypeJoin:
		return r.NewJoin(v)
	case TypeConfusionMatrix:
		return r.NewConfusionMatrix(v, nil)
	}

	if o, ok := v.(Object); ok && o.Node() != nil {
		return o.Node().cast(typeName), nil
	}
	norm, err := r.normalize(v)
	if err != nil {
		return nil, &ArgumentTypeError{Func: typeName, Expected: typeName, Value: v}
	}
	return r.literalNode(typeName, norm), nil
}
