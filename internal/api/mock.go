package api

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is a canned reply for the MockTransport.
type MockReply struct {
	Body json.RawMessage
	Err  error
}

// MockTransport is a deterministic Transport for testing.
// It returns canned replies in FIFO order and records all calls.
type MockTransport struct {
	mu      sync.Mutex
	replies []MockReply
	Calls   []Call
}

// NewMockTransport creates a MockTransport with the given canned replies.
func NewMockTransport(replies ...MockReply) *MockTransport {
	return &MockTransport{replies: replies}
}

// Do returns the next canned reply, or ErrUnavailable if the queue is empty.
func (m *MockTransport) Do(ctx context.Context, call *Call) (*Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, *call)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.replies) == 0 {
		return nil, &ErrUnavailable{}
	}

	r := m.replies[0]
	m.replies = m.replies[1:]

	if r.Err != nil {
		return nil, r.Err
	}
	return &Reply{StatusCode: 200, Body: r.Body, Attempt: 1}, nil
}

// AddReply appends a canned reply to the queue.
func (m *MockTransport) AddReply(r MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, r)
}

// CallCount returns the number of Do calls made.
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Actions returns the Action of every recorded call, in order.
func (m *MockTransport) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Action
	}
	return out
}
