package businesscentral

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/erp/bcadapter/internal/domain/shared"
	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	// maxResponseBytes bounds a buffered response; pictures and attachments are the largest payloads
	maxResponseBytes = 50 << 20
	// maxErrorSummary bounds the body excerpt carried by StatusError
	maxErrorSummary = 512
)

// Response is a fully buffered remote response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Latency    time.Duration
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusError is a non-success answer of the remote system. It unwraps to
// the error category the status belongs to.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s returned %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap maps the status to a shared error category
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return shared.ErrNotFound
	case e.StatusCode == http.StatusConflict || e.StatusCode == http.StatusPreconditionFailed:
		return shared.ErrConcurrencyConflict
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return shared.ErrRemoteAuth
	case e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500:
		return shared.ErrRemoteUnavailable
	default:
		return shared.ErrRemoteRequestFailed
	}
}

// IsNotFound reports whether err is a remote 404
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Executor sends requests, buffers bodies and logs one line per call
type Executor struct {
	client  *http.Client
	logger  *zap.Logger
	verbose bool
	metrics *telemetry.RemoteMetrics
	maxBody int64
}

// NewHTTPClient builds the pooled client used for every remote call
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxConnsPerHost = MaxConnsPerHost
	transport.MaxIdleConnsPerHost = MaxConnsPerHost
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(transport),
	}
}

// NewExecutor creates an executor over client
func NewExecutor(client *http.Client, logger *zap.Logger, verbose bool, metrics *telemetry.RemoteMetrics) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		client:  client,
		logger:  logger,
		verbose: verbose,
		metrics: metrics,
		maxBody: maxResponseBytes,
	}
}

// Do sends req and returns the buffered response whatever its status.
// Only transport failures and bodies over the size limit are returned as
// errors.
func (e *Executor) Do(req *http.Request) (*Response, error) {
	start := time.Now()
	target := redactURL(req.URL)

	resp, err := e.client.Do(req)
	if err != nil {
		latency := time.Since(start)
		e.logger.Warn(fmt.Sprintf("%s %s - failed in %d ms", req.Method, target, latency.Milliseconds()),
			zap.Error(err),
		)
		e.metrics.RecordCall(req.Context(), req.Method, 0, latency)
		return nil, fmt.Errorf("%w: %s %s: %v", shared.ErrRemoteUnavailable, req.Method, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBody+1))
	latency := time.Since(start)
	if err != nil {
		e.metrics.RecordCall(req.Context(), req.Method, resp.StatusCode, latency)
		return nil, fmt.Errorf("%w: read response of %s %s: %v", shared.ErrRemoteUnavailable, req.Method, target, err)
	}
	if int64(len(body)) > e.maxBody {
		e.logger.Warn(fmt.Sprintf("%s %s - %d in %d ms, body over limit", req.Method, target, resp.StatusCode, latency.Milliseconds()),
			zap.Int64("limit_bytes", e.maxBody),
		)
		e.metrics.RecordCall(req.Context(), req.Method, resp.StatusCode, latency)
		return nil, fmt.Errorf("%w: response of %s %s exceeds %d bytes", shared.ErrRemoteRequestFailed, req.Method, target, e.maxBody)
	}

	e.logger.Info(fmt.Sprintf("%s %s - %d in %d ms", req.Method, target, resp.StatusCode, latency.Milliseconds()),
		zap.String("method", req.Method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", latency),
	)
	if e.verbose {
		e.logger.Info("response body", zap.String("url", target), zap.String("body", prettyJSON(body)))
	}
	e.metrics.RecordCall(req.Context(), req.Method, resp.StatusCode, latency)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Latency:    latency,
	}, nil
}

// DoOK sends req and converts non-2xx answers into *StatusError
func (e *Executor) DoOK(req *http.Request) (*Response, error) {
	resp, err := e.Do(req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &StatusError{
			Method:     req.Method,
			URL:        redactURL(req.URL),
			StatusCode: resp.StatusCode,
			Body:       summarize(resp.Body),
		}
	}
	return resp, nil
}

// Decode sends req and decodes a successful JSON answer into T using the
// remote system's own field names.
func Decode[T any](e *Executor, req *http.Request) (*T, error) {
	resp, err := e.DoOK(req)
	if err != nil {
		return nil, err
	}
	var out T
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode %s %s: %v", shared.ErrRemoteRequestFailed, req.Method, redactURL(req.URL), err)
	}
	return &out, nil
}

func prettyJSON(body []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(body), "", "  "); err != nil {
		return string(body)
	}
	return out.String()
}

func summarize(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorSummary {
		return s[:maxErrorSummary] + "..."
	}
	return s
}

// redactURL drops user info so credentials embedded in links never reach the log
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	if u.User == nil {
		return u.String()
	}
	clone := *u
	clone.User = nil
	return clone.String()
}
