// Package businesscentral is the resource client for the Business Central
// OData API: token handling, request construction, execution and one method
// per remote operation used by the entity services.
package businesscentral

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/erp/bcadapter/internal/domain/shared"
	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Client exposes the Business Central resources used by the entity services
type Client struct {
	config   Config
	defaults Defaults
	builder  *RequestBuilder
	exec     *Executor
	logger   *zap.Logger
}

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	tokens     TokenProvider
	metrics    *telemetry.RemoteMetrics
}

// WithHTTPClient replaces the pooled HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithTokenProvider replaces the provider derived from the configuration
func WithTokenProvider(p TokenProvider) Option {
	return func(o *clientOptions) { o.tokens = p }
}

// WithMetrics records remote call metrics
func WithMetrics(m *telemetry.RemoteMetrics) Option {
	return func(o *clientOptions) { o.metrics = m }
}

// NewClient creates a client for the configured environment
func NewClient(cfg Config, defaults Defaults, logger *zap.Logger, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = NewHTTPClient(cfg.Timeout)
	}
	if o.tokens == nil {
		tokens, err := NewTokenProvider(&cfg, o.httpClient, logger)
		if err != nil {
			return nil, err
		}
		o.tokens = tokens
	}

	builder, err := NewRequestBuilder(cfg.BaseURL, o.tokens)
	if err != nil {
		return nil, err
	}

	return &Client{
		config:   cfg,
		defaults: defaults,
		builder:  builder,
		exec:     NewExecutor(o.httpClient, logger, cfg.Verbose, o.metrics),
		logger:   logger,
	}, nil
}

// Defaults returns the creation defaults the client was configured with
func (c *Client) Defaults() Defaults {
	return c.defaults
}

func (c *Client) company() Path {
	return CompanyPath(c.config.Company)
}

// ----- generic helpers -----

// get decodes a single resource
func get[T any](ctx context.Context, c *Client, path Path) (*T, error) {
	req, err := c.builder.Build(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return Decode[T](c.exec, req)
}

// find decodes a single resource, returning nil when it does not exist
func find[T any](ctx context.Context, c *Client, path Path) (*T, error) {
	out, err := get[T](ctx, c, path)
	if IsNotFound(err) {
		return nil, nil
	}
	return out, err
}

// list decodes a collection, following @odata.nextLink up to MaxPages pages
func list[T any](ctx context.Context, c *Client, path Path) ([]T, error) {
	req, err := c.builder.Build(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var all []T
	for page := 1; ; page++ {
		col, err := Decode[Collection[T]](c.exec, req)
		if err != nil {
			return nil, err
		}
		all = append(all, col.Value...)
		if col.NextLink == "" {
			break
		}
		if page >= c.config.MaxPages {
			c.logger.Warn("Listing truncated at page limit",
				zap.String("path", path.String()),
				zap.Int("max_pages", c.config.MaxPages),
			)
			break
		}
		req, err = c.builder.BuildAbsolute(ctx, http.MethodGet, col.NextLink, nil)
		if err != nil {
			return nil, err
		}
	}
	if all == nil {
		all = []T{}
	}
	return all, nil
}

// send encodes body as JSON and decodes the answer into T
func send[T any](ctx context.Context, c *Client, method string, path Path, etag string, body any) (*T, error) {
	req, err := c.jsonRequest(ctx, method, path, etag, body)
	if err != nil {
		return nil, err
	}
	return Decode[T](c.exec, req)
}

// sendNoContent performs a write whose answer body is ignored
func (c *Client) sendNoContent(ctx context.Context, method string, path Path, etag string, body any) error {
	req, err := c.jsonRequest(ctx, method, path, etag, body)
	if err != nil {
		return err
	}
	_, err = c.exec.DoOK(req)
	return err
}

func (c *Client) jsonRequest(ctx context.Context, method string, path Path, etag string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		r, err := JSONBody(body)
		if err != nil {
			return nil, err
		}
		reader = r
	}
	req, err := c.builder.Build(ctx, method, path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	IfMatch(req, etag)
	return req, nil
}

// requireTag guards a conditional write: the record must exist and carry a tag
func requireTag(what, etag string, found bool) error {
	if !found {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, what)
	}
	if etag == "" {
		return fmt.Errorf("%w: %s has no concurrency tag", shared.ErrRemoteRequestFailed, what)
	}
	return nil
}

// download fetches a media link as raw bytes
func (c *Client) download(ctx context.Context, link string) ([]byte, error) {
	req, err := c.builder.BuildAbsolute(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")
	resp, err := c.exec.DoOK(req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// upload replaces a media resource with data under the given concurrency tag
func (c *Client) upload(ctx context.Context, path Path, etag, contentType string, data []byte) error {
	req, err := c.builder.Build(ctx, http.MethodPatch, path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = contentTypeOctet
	}
	req.Header.Set("Content-Type", contentType)
	IfMatch(req, etag)
	_, err = c.exec.DoOK(req)
	return err
}
