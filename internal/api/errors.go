package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable indicates the backend could not be reached or the
// connection failed mid-exchange.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend unavailable: %v", e.Err)
	}
	return "backend unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrStatus indicates the backend answered with a non-2xx status.
type ErrStatus struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *ErrStatus) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Transient reports whether the status is worth retrying.
func (e *ErrStatus) Transient() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// ErrInvalidResponse indicates the response body is not JSON or does not
// carry the expected fields.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("unexpected response from backend: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// Describe turns an error into a short message suitable for the UI.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var (
		unavail *ErrUnavailable
		status  *ErrStatus
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "The backend took too long to respond."
	case errors.As(err, &unavail):
		return "Could not reach the backend. Is it running?"
	case errors.As(err, &status):
		return fmt.Sprintf("The backend rejected the request (HTTP %d).", status.StatusCode)
	case errors.As(err, &invalid):
		return "The backend sent a response the client does not understand."
	default:
		return err.Error()
	}
}
