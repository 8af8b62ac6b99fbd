package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/eegraph/pkg/ee"
)

const algorithmsJSON = `{
	"algorithms": [
		{
			"name": "algorithms/String.cat",
			"returnType": "String",
			"arguments": [
				{"argumentName": "string1", "type": "String"},
				{"argumentName": "string2", "type": "String"}
			]
		}
	]
}`

type recorded struct {
	method string
	path   string
	header http.Header
	body   map[string]any
}

// recorder keeps the requests a test server received.
type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *recorder) add(rec recorded) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, rec)
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.calls...)
}

func newServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, *recorder) {
	t.Helper()

	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := recorded{method: r.Method, path: r.URL.Path, header: r.Header.Clone()}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			assert.NoError(t, json.Unmarshal(b, &call.body))
		}
		rec.add(call)
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newTransport(t *testing.T, baseURL string, modify ...func(*Config)) *HTTP {
	t.Helper()

	cfg := Config{BaseURL: baseURL, Project: "demo", Token: "secret", Timeout: 5 * time.Second, RetryWait: time.Millisecond}
	for _, m := range modify {
		m(&cfg)
	}
	tr, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Project: "demo"})
	assert.ErrorContains(t, err, "base URL is required")

	_, err = New(Config{BaseURL: "http://localhost"})
	assert.ErrorContains(t, err, "project is required")
}

func TestHTTP_FetchCatalog(t *testing.T) {
	t.Parallel()

	// Arrange
	srv, calls := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, algorithmsJSON)
	})
	tr := newTransport(t, srv.URL)

	// Act
	sigs, err := tr.FetchCatalog(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, "String.cat", sigs[0].Name)
	assert.Equal(t, []string{"string1", "string2"}, sigs[0].ArgNames())

	require.Len(t, calls.all(), 1)
	call := calls.all()[0]
	assert.Equal(t, http.MethodGet, call.method)
	assert.Equal(t, "/v1/projects/demo/algorithms", call.path)
	assert.Equal(t, "Bearer secret", call.header.Get("Authorization"))
	_, err = uuid.Parse(call.header.Get(RequestIDHeader))
	assert.NoError(t, err, "every request carries a UUID request id")
}

func TestHTTP_FetchCatalog_Retries(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"error": "try again"}`)
			return
		}
		_, _ = io.WriteString(w, algorithmsJSON)
	})
	tr := newTransport(t, srv.URL, func(c *Config) { c.Retries = 3 })

	sigs, err := tr.FetchCatalog(context.Background())

	require.NoError(t, err)
	assert.Len(t, sigs, 1)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestHTTP_Evaluate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		request  *ee.Request
		response string
		wantPath string
		wantBody map[string]any
		want     any
	}{
		{
			name: "cloud",
			request: &ee.Request{
				Encoding:   ee.EncodingCloud,
				Expression: map[string]any{"result": "0", "values": map[string]any{"0": map[string]any{"constantValue": 3}}},
			},
			response: `{"result": 3}`,
			wantPath: "/v1/projects/demo/value:compute",
			wantBody: map[string]any{"expression": map[string]any{
				"result": "0",
				"values": map[string]any{"0": map[string]any{"constantValue": 3.0}},
			}},
			want: 3.0,
		},
		{
			name: "legacy",
			request: &ee.Request{
				Encoding:   ee.EncodingLegacy,
				Expression: map[string]any{"algorithm": "String.cat", "string1": "<a>", "string2": "b"},
			},
			response: `{"data": "<a>b"}`,
			wantPath: "/api/value",
			wantBody: map[string]any{"json": `{"algorithm":"String.cat","string1":"<a>","string2":"b"}`},
			want:     "<a>b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Arrange
			srv, calls := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, tc.response)
			})
			tr := newTransport(t, srv.URL)

			// Act
			got, err := tr.Evaluate(context.Background(), tc.request)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			require.Len(t, calls.all(), 1)
			call := calls.all()[0]
			assert.Equal(t, http.MethodPost, call.method)
			assert.Equal(t, tc.wantPath, call.path)
			assert.Equal(t, tc.wantBody, call.body)
		})
	}
}

func TestHTTP_Evaluate_RemoteErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "cloud error",
			status:  http.StatusBadRequest,
			body:    `{"error": {"code": 400, "message": "Image.load: asset not found", "status": "INVALID_ARGUMENT"}}`,
			wantErr: "service returned 400 INVALID_ARGUMENT: Image.load: asset not found",
		},
		{
			name:    "legacy error",
			status:  http.StatusBadRequest,
			body:    `{"error": "Unknown algorithm"}`,
			wantErr: "service returned 400: Unknown algorithm",
		},
		{
			name:    "no error body",
			status:  http.StatusForbidden,
			body:    `{}`,
			wantErr: "service returned 403: Forbidden",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv, calls := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})
			tr := newTransport(t, srv.URL)

			_, err := tr.Evaluate(context.Background(), &ee.Request{Expression: "x"})

			var remote *RemoteError
			require.True(t, errors.As(err, &remote))
			assert.Equal(t, tc.status, remote.StatusCode)
			assert.Equal(t, calls.all()[0].header.Get(RequestIDHeader), remote.RequestID)
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestHTTP_Evaluate_UnsupportedEncoding(t *testing.T) {
	t.Parallel()

	tr := newTransport(t, "http://127.0.0.1:0")
	_, err := tr.Evaluate(context.Background(), &ee.Request{Encoding: ee.Encoding(7)})
	assert.ErrorContains(t, err, "unsupported encoding Encoding(7)")
}
