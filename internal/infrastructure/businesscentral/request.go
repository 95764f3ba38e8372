package businesscentral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/erp/bcadapter/internal/domain/shared"
)

const (
	contentTypeJSON  = "application/json"
	contentTypeOctet = "application/octet-stream"
)

// RequestBuilder turns resource paths into authenticated requests.
// The credential is resolved again for every request so refreshes stay invisible to callers.
type RequestBuilder struct {
	baseURL *url.URL
	tokens  TokenProvider
}

// NewRequestBuilder creates a builder rooted at baseURL
func NewRequestBuilder(baseURL string, tokens TokenProvider) (*RequestBuilder, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", shared.ErrInvalidInput, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL must be absolute: %q", shared.ErrInvalidInput, baseURL)
	}
	return &RequestBuilder{baseURL: u, tokens: tokens}, nil
}

// Build creates a request for a path below the base URL
func (b *RequestBuilder) Build(ctx context.Context, method string, path Path, body io.Reader) (*http.Request, error) {
	target := b.baseURL.String() + path.String()
	return b.build(ctx, method, target, body)
}

// BuildAbsolute creates a request for an absolute link returned by the
// remote system (media read links, @odata.nextLink). The link must point
// at the same host as the base URL.
func (b *RequestBuilder) BuildAbsolute(ctx context.Context, method, link string, body io.Reader) (*http.Request, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid link %q: %v", shared.ErrRemoteRequestFailed, link, err)
	}
	if !u.IsAbs() {
		u = b.baseURL.ResolveReference(u)
	}
	if !strings.EqualFold(u.Host, b.baseURL.Host) {
		return nil, fmt.Errorf("%w: link host %q does not match %q", shared.ErrRemoteRequestFailed, u.Host, b.baseURL.Host)
	}
	return b.build(ctx, method, u.String(), body)
}

func (b *RequestBuilder) build(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	cred, err := b.tokens.Credential(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", shared.ErrInvalidInput, err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Authorization", cred.AuthorizationHeader())
	return req, nil
}

// JSONBody encodes v as a request body
func JSONBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: encode body: %v", shared.ErrInvalidInput, err)
	}
	return bytes.NewReader(data), nil
}

// IfMatch attaches an optimistic concurrency precondition
func IfMatch(req *http.Request, etag string) {
	if etag != "" {
		req.Header.Set("If-Match", etag)
	}
}
