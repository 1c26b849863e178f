package api

import "context"

type contextKey string

const requestIDKey contextKey = "api_request_id"

// WithRequestID attaches a request id to the context. It is sent as the
// X-Request-ID header and recorded in the journal.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom extracts the request id from the context.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
