package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestType(t *testing.T) {
	assert.Equal(t, cty.String, Type("String"))
	assert.Equal(t, cty.Number, Type("Float"))
	assert.Equal(t, cty.Number, Type("Long"))
	assert.Equal(t, cty.Bool, Type("Boolean"))
	assert.Equal(t, cty.List(cty.DynamicPseudoType), Type("List"))
	assert.Equal(t, cty.List(cty.String), Type("List<String>"))
	assert.Equal(t, cty.Map(cty.DynamicPseudoType), Type("Dictionary"))
	assert.Equal(t, cty.DynamicPseudoType, Type("Image"))
}

func TestConforms(t *testing.T) {
	testCases := []struct {
		name      string
		val       cty.Value
		typeName  string
		expectErr bool
	}{
		{name: "string", val: cty.StringVal("a"), typeName: "String"},
		{name: "number for string", val: cty.NumberIntVal(1), typeName: "String", expectErr: true},
		{name: "number", val: cty.NumberIntVal(1), typeName: "Integer"},
		{name: "bool", val: cty.True, typeName: "Boolean"},
		{name: "tuple for list", val: cty.TupleVal([]cty.Value{cty.NumberIntVal(1)}), typeName: "List"},
		{name: "string for list", val: cty.StringVal("a"), typeName: "List", expectErr: true},
		{name: "object for dictionary", val: cty.ObjectVal(map[string]cty.Value{"a": cty.True}), typeName: "Dictionary"},
		{name: "anything for image", val: cty.StringVal("id"), typeName: "Image"},
		{name: "null always conforms", val: cty.NullVal(cty.String), typeName: "Number"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Conforms(tc.val, tc.typeName)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
