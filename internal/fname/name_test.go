package fname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName_Parts(t *testing.T) {
	testCases := []struct {
		raw         string
		namespace   string
		method      string
		constructor bool
	}{
		{raw: "String.cat", namespace: "String", method: "cat"},
		{raw: "Date", namespace: "", method: "Date", constructor: true},
		{raw: "Image.Segmentation.SNIC", namespace: "Image.Segmentation", method: "SNIC"},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			n := MustParse(tc.raw)
			assert.Equal(t, tc.raw, n.String())
			assert.Equal(t, tc.namespace, n.Namespace())
			assert.Equal(t, tc.method, n.Method())
			assert.Equal(t, tc.constructor, n.IsConstructor())
		})
	}
}

func TestName_InNamespace(t *testing.T) {
	assert.True(t, MustParse("String.cat").InNamespace("String"))
	assert.False(t, MustParse("String.cat").InNamespace("Str"))
	assert.False(t, MustParse("String").InNamespace("String"))
	assert.False(t, MustParse("Image.Segmentation.SNIC").InNamespace("Image"))
	assert.True(t, MustParse("Image.Segmentation.SNIC").InNamespace("Image.Segmentation"))
}

func TestName_Equal(t *testing.T) {
	a := MustParse("Number.add")
	b := MustParse("Number.add")
	c := MustParse("Number.subtract")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.False(t, (*Name)(nil).Equal(a))
	assert.True(t, (*Name)(nil).Equal(nil))
	assert.Equal(t, "", (*Name)(nil).String())
}
