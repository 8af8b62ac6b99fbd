package ee

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/eegraph/internal/ctxlog"
	"github.com/vk/eegraph/pkg/catalog"
	"github.com/vk/eegraph/pkg/ee/serializer"
)

// Encoding selects the wire encoding sent to the service.
type Encoding int

const (
	EncodingCloud Encoding = iota
	EncodingLegacy
)

func (e Encoding) String() string {
	switch e {
	case EncodingCloud:
		return "cloud"
	case EncodingLegacy:
		return "legacy"
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// ParseEncoding parses "cloud" or "legacy".
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cloud", "":
		return EncodingCloud, nil
	case "legacy":
		return EncodingLegacy, nil
	}
	return 0, fmt.Errorf("unknown encoding %q (want cloud or legacy)", s)
}

// Request is an encoded graph ready for evaluation.
type Request struct {
	Encoding   Encoding
	Expression any
}

// Transport talks to the evaluation service.
type Transport interface {
	FetchCatalog(ctx context.Context) ([]*catalog.Signature, error)
	Evaluate(ctx context.Context, req *Request) (any, error)
}

// Client evaluates graphs through a Transport.
type Client struct {
	transport Transport
	encoding  Encoding
	options   serializer.Options
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEncoding selects the wire encoding. The default is EncodingCloud.
func WithEncoding(e Encoding) ClientOption {
	return func(c *Client) { c.encoding = e }
}

// WithSerializerOptions overrides serializer.DefaultOptions.
func WithSerializerOptions(opts serializer.Options) ClientOption {
	return func(c *Client) { c.options = opts }
}

// NewClient creates a client over t.
func NewClient(t Transport, opts ...ClientOption) *Client {
	c := &Client{
		transport: t,
		encoding:  EncodingCloud,
		options:   serializer.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encoding returns the wire encoding the client uses.
func (c *Client) Encoding() Encoding { return c.encoding }

// Encode builds the request for v without sending it.
func (c *Client) Encode(v any) (*Request, error) {
	var (
		expr any
		err  error
	)
	if c.encoding == EncodingLegacy {
		expr, err = serializer.Encode(v, c.options)
	} else {
		expr, err = serializer.EncodeCloudValue(v, c.options)
	}
	if err != nil {
		return nil, err
	}
	return &Request{Encoding: c.encoding, Expression: expr}, nil
}

// GetInfo encodes v, has the service evaluate it and returns the decoded
// result. Errors from the service are returned wrapped.
func (c *Client) GetInfo(ctx context.Context, v any) (any, error) {
	logger := ctxlog.FromContext(ctx)

	req, err := c.Encode(v)
	if err != nil {
		return nil, err
	}
	logger.Debug("Evaluating graph", "encoding", c.encoding.String())

	result, err := c.transport.Evaluate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}
	return result, nil
}
