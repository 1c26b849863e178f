package api

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/vectortutor/internal/logger"
	"github.com/abhisek/vectortutor/internal/store"
)

// JournalTransport is a decorator that records every attempt as an API call
// event and a log line.
type JournalTransport struct {
	inner     Transport
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithJournal wraps a Transport with event journaling. A nil repo skips
// persistence but still logs.
func WithJournal(t Transport, repo store.EventRepo, log *logger.Logger) Transport {
	if log == nil {
		log = logger.Nop()
	}
	return &JournalTransport{inner: t, eventRepo: repo, log: log.With("component", "api")}
}

func (j *JournalTransport) Do(ctx context.Context, call *Call) (*Reply, error) {
	start := time.Now()
	reply, err := j.inner.Do(ctx, call)
	latency := time.Since(start)

	data := store.APICallEventData{
		RequestID: RequestIDFrom(ctx),
		Action:    call.Action,
		Method:    call.Method,
		Path:      call.Path,
		LatencyMs: latency.Milliseconds(),
		Attempt:   attemptFrom(ctx),
		Success:   err == nil,
	}
	if reply != nil {
		data.StatusCode = reply.StatusCode
		data.ResponseBody = string(reply.Body)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		var status *ErrStatus
		if errors.As(err, &status) {
			data.StatusCode = status.StatusCode
			data.ResponseBody = status.Body
		}
	}

	kv := []any{
		"action", call.Action,
		"method", call.Method,
		"path", call.Path,
		"request_id", data.RequestID,
		"attempt", data.Attempt,
		"status", data.StatusCode,
		"latency_ms", data.LatencyMs,
	}
	switch {
	case err == nil:
		j.log.Info("backend call finished", kv...)
	case isContextErr(err):
		j.log.Debug("backend call cancelled", append(kv, "error", err)...)
	default:
		j.log.Warn("backend call failed", append(kv, "error", err)...)
	}

	// Journal the event but don't fail the call if journaling fails.
	if j.eventRepo != nil {
		if logErr := j.eventRepo.AppendAPICall(context.WithoutCancel(ctx), data); logErr != nil {
			j.log.Warn("failed to journal API call", "error", logErr)
		}
	}

	return reply, err
}
