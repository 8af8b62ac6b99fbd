package ee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/eegraph/internal/testutil"
	"github.com/vk/eegraph/pkg/catalog"
)

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()

	logger, _ := testutil.Logger(t)
	reg, err := NewRegistry(testutil.Catalog(t), append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	return reg
}

// mockTransport records evaluation requests and answers with fixed values.
type mockTransport struct {
	sigs     []*catalog.Signature
	fetchErr error

	result  any
	evalErr error

	requests []*Request
}

func (m *mockTransport) FetchCatalog(context.Context) ([]*catalog.Signature, error) {
	return m.sigs, m.fetchErr
}

func (m *mockTransport) Evaluate(_ context.Context, req *Request) (any, error) {
	m.requests = append(m.requests, req)
	return m.result, m.evalErr
}
