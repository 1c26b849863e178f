package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int    // max results (0 = unlimited)
	Before int    // id < Before (0 = no bound)
	Action string // exact action match ("" = all)
}

// APICallEventData captures one HTTP exchange with the study backend.
type APICallEventData struct {
	RequestID    string
	Action       string
	Method       string
	Path         string
	StatusCode   int
	LatencyMs    int64
	Attempt      int
	Success      bool
	ErrorMessage string
	ResponseBody string
}

// APICallRecord is a stored APICallEventData.
type APICallRecord struct {
	ID        int
	Timestamp time.Time
	APICallEventData
}

// ActionUsage aggregates journal rows for one action.
type ActionUsage struct {
	Action       string
	Calls        int
	Failures     int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the request journal.
type EventRepo interface {
	// AppendAPICall records one backend exchange.
	AppendAPICall(ctx context.Context, data APICallEventData) error

	// QueryAPICalls returns exchanges newest first.
	QueryAPICalls(ctx context.Context, opts QueryOpts) ([]APICallRecord, error)

	// GetAPICall returns one exchange, or nil if id is unknown.
	GetAPICall(ctx context.Context, id int) (*APICallRecord, error)

	// UsageByAction aggregates exchanges per action, ordered by action.
	UsageByAction(ctx context.Context) ([]ActionUsage, error)
}
