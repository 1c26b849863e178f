package session

import (
	"time"

	"github.com/abhisek/vectortutor/internal/api"
)

// Op names a user-triggered operation.
type Op string

const (
	OpUpload     Op = "upload"
	OpSummary    Op = "summary"
	OpFlashcards Op = "flashcards"
	OpQuiz       Op = "quiz"
	OpSubmit     Op = "submit"
	OpAsk        Op = "ask"
)

// Ops lists every operation in display order.
var Ops = []Op{OpUpload, OpSummary, OpFlashcards, OpQuiz, OpSubmit, OpAsk}

// derivedOps are the operations whose results belong to the current material.
var derivedOps = []Op{OpSummary, OpFlashcards, OpQuiz, OpSubmit, OpAsk}

// Status is the lifecycle of one operation.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OpState is the status of the latest invocation of an operation.
type OpState struct {
	Status Status

	// Err is set when Status is StatusFailed.
	Err error

	// InvocationID is the request id of the latest invocation.
	InvocationID string

	StartedAt  time.Time
	FinishedAt time.Time
}

// State is a point-in-time copy of the session.
type State struct {
	BackendURL string
	UserID     string

	// Material is nil until an upload succeeds.
	Material *api.Material

	Summary    string
	Flashcards []api.Flashcard
	Quiz       []api.QuizQuestion
	Answer     string

	// Accuracy is the last graded quiz result, nil if none.
	Accuracy *float64

	// Notice is a blocking message for the user (quiz result). Cleared by
	// DismissNotice.
	Notice string

	Ops map[Op]OpState
}

// HasMaterial reports whether an upload has succeeded.
func (s State) HasMaterial() bool {
	return s.Material != nil
}

// TopicCount returns the number of topics the backend detected.
func (s State) TopicCount() int {
	if s.Material == nil {
		return 0
	}
	return len(s.Material.Topics)
}

// Status returns the status of op.
func (s State) Status(op Op) Status {
	return s.Ops[op].Status
}

// Busy reports whether any operation is in flight.
func (s State) Busy() bool {
	for _, st := range s.Ops {
		if st.Status == StatusPending {
			return true
		}
	}
	return false
}

// clone returns a deep copy safe to hand to callers.
func (s State) clone() State {
	out := s
	if s.Material != nil {
		m := *s.Material
		m.Topics = append(m.Topics[:0:0], s.Material.Topics...)
		out.Material = &m
	}
	if s.Flashcards != nil {
		out.Flashcards = append([]api.Flashcard(nil), s.Flashcards...)
	}
	if s.Quiz != nil {
		out.Quiz = make([]api.QuizQuestion, len(s.Quiz))
		for i, q := range s.Quiz {
			q.Options = append([]string(nil), q.Options...)
			out.Quiz[i] = q
		}
	}
	if s.Accuracy != nil {
		a := *s.Accuracy
		out.Accuracy = &a
	}
	out.Ops = make(map[Op]OpState, len(s.Ops))
	for k, v := range s.Ops {
		out.Ops[k] = v
	}
	return out
}

// clearDerived drops everything computed from the previous material.
func (s *State) clearDerived() {
	s.Summary = ""
	s.Flashcards = nil
	s.Quiz = nil
	s.Answer = ""
	s.Accuracy = nil
	s.Notice = ""
	for _, op := range derivedOps {
		s.Ops[op] = OpState{}
	}
}
