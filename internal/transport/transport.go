package transport

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vk/eegraph/internal/ctxlog"
	"github.com/vk/eegraph/pkg/catalog"
	"github.com/vk/eegraph/pkg/ee"
	"github.com/vk/eegraph/pkg/ee/serializer"
	"resty.dev/v3"
)

const (
	algorithmsPath = "/v1/projects/{project}/algorithms"
	computePath    = "/v1/projects/{project}/value:compute"
	legacyPath     = "/api/value"

	// RequestIDHeader carries the identifier logged for every call.
	RequestIDHeader = "X-Request-Id"
)

// Config holds the connection settings.
type Config struct {
	BaseURL   string
	Project   string
	Token     string
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
}

// HTTP is an ee.Transport backed by a resty client.
type HTTP struct {
	client  *resty.Client
	project string
}

var _ ee.Transport = (*HTTP)(nil)

// RemoteError is a non-2xx answer from the service.
type RemoteError struct {
	StatusCode int
	Status     string
	Message    string
	RequestID  string
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Status != "" {
		return fmt.Sprintf("service returned %d %s: %s", e.StatusCode, e.Status, msg)
	}
	return fmt.Sprintf("service returned %d: %s", e.StatusCode, msg)
}

// errorBody matches both the cloud ({"error": {"message": ...}}) and the
// legacy ({"error": "..."}) error payloads.
type errorBody struct {
	Error any `json:"error"`
}

type computeRequest struct {
	Expression any `json:"expression"`
}

type computeResponse struct {
	Result any `json:"result"`
}

type legacyRequest struct {
	JSON string `json:"json"`
}

type legacyResponse struct {
	Data any `json:"data"`
}

// New creates a transport for cfg. Close releases its connections.
func New(cfg Config) (*HTTP, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("transport: base URL is required")
	}
	if cfg.Project == "" {
		return nil, errors.New("transport: project is required")
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetPathParam("project", cfg.Project).
		SetRetryCount(cfg.Retries).
		SetAllowNonIdempotentRetry(true).
		AddRetryConditions(retryable)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if cfg.RetryWait > 0 {
		client.SetRetryWaitTime(cfg.RetryWait).SetRetryMaxWaitTime(cfg.RetryWait)
	}
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	return &HTTP{client: client, project: cfg.Project}, nil
}

// Close releases the underlying client.
func (h *HTTP) Close() error {
	return h.client.Close()
}

func retryable(res *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	code := res.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// FetchCatalog downloads the function catalog.
func (h *HTTP) FetchCatalog(ctx context.Context) ([]*catalog.Signature, error) {
	var list catalog.AlgorithmList
	if err := h.do(ctx, http.MethodGet, algorithmsPath, nil, &list); err != nil {
		return nil, errors.Wrap(err, "failed to fetch algorithms")
	}
	sigs, err := catalog.FromWire(list)
	if err != nil {
		return nil, errors.Wrap(err, "invalid algorithm listing")
	}
	ctxlog.FromContext(ctx).Debug("Fetched function catalog", "project", h.project, "functions", len(sigs))
	return sigs, nil
}

// Evaluate sends an encoded graph for computation and returns the decoded
// result.
func (h *HTTP) Evaluate(ctx context.Context, req *ee.Request) (any, error) {
	switch req.Encoding {
	case ee.EncodingCloud:
		var out computeResponse
		if err := h.do(ctx, http.MethodPost, computePath, computeRequest{Expression: req.Expression}, &out); err != nil {
			return nil, err
		}
		return out.Result, nil

	case ee.EncodingLegacy:
		encoded, err := serializer.Marshal(req.Expression, false)
		if err != nil {
			return nil, errors.Wrap(err, "failed to render legacy expression")
		}
		var out legacyResponse
		if err := h.do(ctx, http.MethodPost, legacyPath, legacyRequest{JSON: string(encoded)}, &out); err != nil {
			return nil, err
		}
		return out.Data, nil
	}
	return nil, errors.Errorf("unsupported encoding %v", req.Encoding)
}

func (h *HTTP) do(ctx context.Context, method, path string, body, result any) error {
	requestID := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("request_id", requestID, "method", method, "path", path)

	r := h.client.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetResult(result).
		SetError(&errorBody{})
	if body != nil {
		r.SetBody(body)
	}

	start := time.Now()
	res, err := r.Execute(method, path)
	if err != nil {
		logger.Warn("Request failed", "error", err)
		return errors.Wrapf(err, "%s %s", method, path)
	}
	logger.Debug("Request completed", "status", res.StatusCode(), "duration", time.Since(start))

	if res.IsError() {
		return remoteError(res, requestID)
	}
	return nil
}

func remoteError(res *resty.Response, requestID string) *RemoteError {
	rerr := &RemoteError{StatusCode: res.StatusCode(), RequestID: requestID}
	body, _ := res.Error().(*errorBody)
	if body == nil {
		return rerr
	}
	switch e := body.Error.(type) {
	case string:
		rerr.Message = e
	case map[string]any:
		rerr.Message, _ = e["message"].(string)
		rerr.Status, _ = e["status"].(string)
	}
	return rerr
}
