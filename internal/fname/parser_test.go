package fname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		raw          string
		expectErr    bool
		expectedName *Name
	}{
		{
			name:         "method in namespace",
			raw:          "String.cat",
			expectedName: &Name{Segments: []string{"String", "cat"}},
		},
		{
			name:         "bare constructor",
			raw:          "Date",
			expectedName: &Name{Segments: []string{"Date"}},
		},
		{
			name:         "catalog prefix is stripped",
			raw:          "algorithms/Image.reduceRegion",
			expectedName: &Name{Segments: []string{"Image", "reduceRegion"}},
		},
		{
			name:         "nested namespace",
			raw:          "Image.Segmentation.SNIC",
			expectedName: &Name{Segments: []string{"Image", "Segmentation", "SNIC"}},
		},
		{
			name:      "error - empty",
			raw:       "",
			expectErr: true,
		},
		{
			name:      "error - only prefix",
			raw:       "algorithms/",
			expectErr: true,
		},
		{
			name:      "error - empty segment",
			raw:       "String..cat",
			expectErr: true,
		},
		{
			name:      "error - leading digit",
			raw:       "String.2cat",
			expectErr: true,
		},
		{
			name:      "error - invalid character",
			raw:       "String.c-at",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expectedName.Equal(n), "parsed %v, want %v", n, tc.expectedName)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("..") })
	assert.NotPanics(t, func() { MustParse("Number.add") })
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "Number.add", Join("Number", "add"))
	assert.Equal(t, "Date", Join("", "Date"))
}
