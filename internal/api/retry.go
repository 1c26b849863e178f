package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures retry behavior for idempotent reads.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// AttemptTimeout bounds each attempt of a retried call so a hung
	// request leaves room for another try. Zero leaves attempts bounded only
	// by the caller's context. Calls that are sent once never get it.
	AttemptTimeout time.Duration
}

// RetryTransport is a decorator that retries transient failures of
// idempotent calls with exponential backoff and jitter. Non-idempotent
// calls (uploads, generation, submission, questions) are sent once.
type RetryTransport struct {
	inner  Transport
	config RetryConfig
}

// WithRetry wraps a Transport with retry logic.
func WithRetry(t Transport, cfg RetryConfig) Transport {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryTransport{inner: t, config: cfg}
}

func (r *RetryTransport) Do(ctx context.Context, call *Call) (*Reply, error) {
	if !call.Idempotent {
		return r.inner.Do(withAttempt(ctx, 1), call)
	}

	var lastErr error
	for attempt := range r.config.MaxAttempts {
		reply, err := r.attempt(ctx, call, attempt+1)
		if err == nil {
			reply.Attempt = attempt + 1
			return reply, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}

		// Last attempt: don't sleep, just return the error.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, lastErr
}

// attempt runs one try of an idempotent call under AttemptTimeout. An
// attempt that times out while the caller's context is still live is
// reported as ErrUnavailable so it can be retried.
func (r *RetryTransport) attempt(ctx context.Context, call *Call, n int) (*Reply, error) {
	if r.config.AttemptTimeout <= 0 {
		return r.inner.Do(withAttempt(ctx, n), call)
	}

	actx, cancel := context.WithTimeout(ctx, r.config.AttemptTimeout)
	defer cancel()

	reply, err := r.inner.Do(withAttempt(actx, n), call)
	if err != nil && ctx.Err() == nil && errors.Is(actx.Err(), context.DeadlineExceeded) {
		return nil, &ErrUnavailable{Err: fmt.Errorf("attempt %d timed out after %s: %w", n, r.config.AttemptTimeout, err)}
	}
	return reply, err
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error) bool {
	// A timed-out attempt arrives as ErrUnavailable wrapping the deadline.
	var unavail *ErrUnavailable
	if errors.As(err, &unavail) {
		return true
	}
	if isContextErr(err) {
		return false
	}

	var status *ErrStatus
	if errors.As(err, &status) {
		return status.Transient()
	}
	return false
}

// backoff computes the wait duration for the given attempt.
func (r *RetryTransport) backoff(attempt int, err error) time.Duration {
	var status *ErrStatus
	if errors.As(err, &status) && status.RetryAfter > 0 {
		return status.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

const attemptKey contextKey = "api_attempt"

func withAttempt(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, attemptKey, n)
}

// attemptFrom returns the 1-based attempt number for the current call.
func attemptFrom(ctx context.Context) int {
	if v, ok := ctx.Value(attemptKey).(int); ok {
		return v
	}
	return 1
}
