package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// Transport performs one exchange with the backend. Decorators (retry,
// journaling) wrap a base HTTP transport.
type Transport interface {
	Do(ctx context.Context, call *Call) (*Reply, error)
}

// Call describes a single backend request.
type Call struct {
	// Action names the client operation, e.g. "summary" or "quiz-list".
	Action string

	Method string
	Path   string
	Query  url.Values

	ContentType string

	// Body is fully buffered so the request can be re-sent on retry.
	Body []byte

	// Idempotent marks reads that are safe to retry.
	Idempotent bool
}

// Reply holds a successful (2xx) response.
type Reply struct {
	StatusCode int
	Body       json.RawMessage
	Latency    time.Duration

	// Attempt is the 1-based attempt that produced this reply.
	Attempt int
}

// HTTPTransport sends calls over net/http.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates a transport rooted at baseURL.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (t *HTTPTransport) Do(ctx context.Context, call *Call) (*Reply, error) {
	u := t.baseURL + call.Path
	if len(call.Query) > 0 {
		u += "?" + call.Query.Encode()
	}

	var body io.Reader
	if call.Body != nil {
		body = bytes.NewReader(call.Body)
	}
	req, err := http.NewRequestWithContext(ctx, call.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if call.ContentType != "" {
		req.Header.Set("Content-Type", call.ContentType)
	}
	req.Header.Set("Accept", "application/json")
	if id := RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ErrUnavailable{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ErrUnavailable{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ErrStatus{
			StatusCode: resp.StatusCode,
			Body:       excerpt(raw, 200),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	return &Reply{
		StatusCode: resp.StatusCode,
		Body:       raw,
		Latency:    time.Since(start),
		Attempt:    1,
	}, nil
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

func excerpt(raw []byte, n int) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

// isContextErr reports whether err came from context cancellation or deadline.
func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
