package literal

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// numberTypes are the catalog type names that all denote a Number.
var numberTypes = map[string]bool{
	"Number":  true,
	"Float":   true,
	"Double":  true,
	"Integer": true,
	"Int":     true,
	"Long":    true,
	"Short":   true,
	"Byte":    true,
}

// IsNumberType reports whether the catalog type name denotes a Number.
func IsNumberType(name string) bool {
	return numberTypes[name]
}

// Type maps a catalog type name onto the cty type its literals must have.
// Names without a literal form (Image, Geometry, ...) map to
// cty.DynamicPseudoType. Parameterized names such as List<String> are
// honored.
func Type(name string) cty.Type {
	base, param := splitParam(name)
	switch {
	case base == "String":
		return cty.String
	case base == "Boolean" || base == "Bool":
		return cty.Bool
	case IsNumberType(base):
		return cty.Number
	case base == "List" || base == "Array":
		if param == "" {
			return cty.List(cty.DynamicPseudoType)
		}
		return cty.List(Type(param))
	case base == "Dictionary":
		return cty.Map(cty.DynamicPseudoType)
	}
	return cty.DynamicPseudoType
}

func splitParam(name string) (string, string) {
	i := strings.IndexByte(name, '<')
	if i < 0 || !strings.HasSuffix(name, ">") {
		return name, ""
	}
	return name[:i], name[i+1 : len(name)-1]
}

// Conforms checks that val is an acceptable literal for the catalog type
// name. Primitives must match exactly; tuples are accepted for lists and
// objects for dictionaries, since that is how HCL and JSON literals arrive.
func Conforms(val cty.Value, typeName string) error {
	if val.IsNull() {
		return nil
	}
	want := Type(typeName)
	got := val.Type()

	switch {
	case want.Equals(cty.DynamicPseudoType):
		return nil
	case want.IsPrimitiveType():
		if got.Equals(want) {
			return nil
		}
	case want.IsListType():
		if got.IsListType() || got.IsTupleType() || got.IsSetType() {
			return nil
		}
	case want.IsMapType():
		if got.IsMapType() || got.IsObjectType() {
			return nil
		}
	}
	return fmt.Errorf("a %s value is not a valid %s", got.FriendlyName(), typeName)
}
