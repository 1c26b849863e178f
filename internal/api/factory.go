package api

import (
	"net/http"

	"github.com/abhisek/vectortutor/internal/logger"
	"github.com/abhisek/vectortutor/internal/store"
)

// Options configures New.
type Options struct {
	BaseURL string

	// Retry.AttemptTimeout bounds each try of a retried read. Everything
	// else is bounded by the caller's context alone.
	Retry     RetryConfig
	EventRepo store.EventRepo
	Logger    *logger.Logger
}

// New creates a Client wrapped with journaling and retry middleware:
// caller → retry → journal → HTTP.
func New(opts Options) *Client {
	base := NewHTTPTransport(opts.BaseURL, &http.Client{})
	journaled := WithJournal(base, opts.EventRepo, opts.Logger)
	retried := WithRetry(journaled, opts.Retry)
	return NewClient(retried)
}
