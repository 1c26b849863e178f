package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/vectortutor/internal/api"
	"github.com/abhisek/vectortutor/internal/logger"
)

// DefaultTimeout bounds every operation unless Options.Timeout is set.
const DefaultTimeout = 60 * time.Second

// DefaultTopicIndex is the topic flashcards and quizzes are generated for.
// There is no topic picker, so it is always the first topic.
const DefaultTopicIndex = 0

// ErrSuperseded is returned by an operation whose result was discarded
// because a newer invocation of the same operation, or a new upload, replaced
// it.
var ErrSuperseded = errors.New("superseded by a newer request")

// Backend is the slice of the study API the controller drives.
// *api.Client satisfies it.
type Backend interface {
	UploadMaterial(ctx context.Context, in api.UploadInput) (*api.Material, error)
	Summary(ctx context.Context, id api.MaterialID) (string, error)
	GenerateFlashcards(ctx context.Context, in api.GenerateInput) error
	ListFlashcards(ctx context.Context, id api.MaterialID, userID string) ([]api.Flashcard, error)
	GenerateQuiz(ctx context.Context, in api.GenerateInput) error
	ListQuiz(ctx context.Context, id api.MaterialID, userID string) ([]api.QuizQuestion, error)
	SubmitQuiz(ctx context.Context, req api.SubmitQuizRequest) (*api.QuizResult, error)
	Ask(ctx context.Context, req api.AskRequest) (*api.AskResponse, error)
}

// Options configures a Controller.
type Options struct {
	BackendURL string
	UserID     string

	// Timeout bounds each operation, including every request it makes.
	// Zero means DefaultTimeout.
	Timeout time.Duration

	Logger *logger.Logger
}

// Controller owns the study session state and runs the user operations
// against the backend. It is safe for concurrent use; each operation blocks
// until its requests finish and is meant to be run off the UI goroutine.
type Controller struct {
	backend Backend
	userID  string
	timeout time.Duration
	log     *logger.Logger

	// readFile is swapped in tests.
	readFile func(string) ([]byte, error)

	mu         sync.Mutex
	state      State
	inflight   map[Op]*invocation
	generation uint64 // bumped on every successful upload
}

type invocation struct {
	op     Op
	id     string
	gen    uint64
	cancel context.CancelFunc
}

// NewController creates a Controller with an empty session.
func NewController(backend Backend, opts Options) *Controller {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Controller{
		backend:  backend,
		userID:   opts.UserID,
		timeout:  opts.Timeout,
		log:      opts.Logger.With("component", "session"),
		readFile: os.ReadFile,
		state: State{
			BackendURL: opts.BackendURL,
			UserID:     opts.UserID,
			Ops:        make(map[Op]OpState, len(Ops)),
		},
		inflight: make(map[Op]*invocation),
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// DismissNotice clears the pending notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Notice = ""
}

// Close cancels every in-flight operation.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for op, inv := range c.inflight {
		inv.cancel()
		delete(c.inflight, op)
		c.state.Ops[op] = OpState{InvocationID: inv.id}
	}
}

// Upload reads the file at path and sends it to the backend. On success the
// returned material replaces the current one and everything derived from the
// previous material is dropped. An empty path is a no-op.
func (c *Controller) Upload(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	ctx, inv, _ := c.begin(ctx, OpUpload, nil)
	data, err := c.readFile(path)
	if err != nil {
		return c.finish(inv, fmt.Errorf("read %s: %w", path, err), nil, nil)
	}

	m, err := c.backend.UploadMaterial(ctx, api.UploadInput{
		UserID:   c.userID,
		FileName: filepath.Base(path),
		Content:  data,
	})
	return c.finish(inv, err, func(s *State) {
		c.generation++
		for _, op := range derivedOps {
			if prev := c.inflight[op]; prev != nil {
				prev.cancel()
				delete(c.inflight, op)
			}
		}
		s.Material = m
		s.clearDerived()
	}, nil)
}

// Summarize fetches the summary of the current material.
func (c *Controller) Summarize(ctx context.Context) error {
	var id api.MaterialID
	ctx, inv, ok := c.begin(ctx, OpSummary, c.withMaterial(&id))
	if !ok {
		return nil
	}

	text, err := c.backend.Summary(ctx, id)
	return c.finish(inv, err, func(s *State) {
		s.Summary = text
	}, nil)
}

// GenerateFlashcards asks the backend to generate flashcards for the current
// material and then reloads the full list.
func (c *Controller) GenerateFlashcards(ctx context.Context) error {
	var id api.MaterialID
	ctx, inv, ok := c.begin(ctx, OpFlashcards, c.withMaterial(&id))
	if !ok {
		return nil
	}

	err := c.backend.GenerateFlashcards(ctx, c.generateInput(id))
	if err != nil && !c.continueAfterGenerate(inv, err) {
		return c.finish(inv, err, nil, nil)
	}

	cards, err := c.backend.ListFlashcards(ctx, id, c.userID)
	return c.finish(inv, err, func(s *State) {
		s.Flashcards = cards
	}, func(s *State) {
		s.Flashcards = nil
	})
}

// GenerateQuiz asks the backend to generate quiz questions for the current
// material and then reloads the full list.
func (c *Controller) GenerateQuiz(ctx context.Context) error {
	var id api.MaterialID
	ctx, inv, ok := c.begin(ctx, OpQuiz, c.withMaterial(&id))
	if !ok {
		return nil
	}

	err := c.backend.GenerateQuiz(ctx, c.generateInput(id))
	if err != nil && !c.continueAfterGenerate(inv, err) {
		return c.finish(inv, err, nil, nil)
	}

	quiz, err := c.backend.ListQuiz(ctx, id, c.userID)
	return c.finish(inv, err, func(s *State) {
		s.Quiz = quiz
	}, func(s *State) {
		s.Quiz = nil
	})
}

// SubmitQuiz grades the current quiz and raises an accuracy notice.
// It is a no-op when there are no quiz questions.
func (c *Controller) SubmitQuiz(ctx context.Context) error {
	var quiz []api.QuizQuestion
	ctx, inv, ok := c.begin(ctx, OpSubmit, func(s *State) bool {
		if len(s.Quiz) == 0 {
			return false
		}
		quiz = append([]api.QuizQuestion(nil), s.Quiz...)
		return true
	})
	if !ok {
		return nil
	}

	res, err := c.backend.SubmitQuiz(ctx, api.SubmitQuizRequest{
		UserID:  c.userID,
		Answers: BuildQuizAnswers(quiz),
	})
	return c.finish(inv, err, func(s *State) {
		acc := res.Accuracy
		s.Accuracy = &acc
		s.Notice = "Accuracy: " + FormatAccuracy(acc)
	}, nil)
}

// Ask sends a question about the current material. An empty question is
// ignored; anything else is sent as typed.
func (c *Controller) Ask(ctx context.Context, question string) error {
	if question == "" {
		return nil
	}
	var id api.MaterialID
	ctx, inv, ok := c.begin(ctx, OpAsk, c.withMaterial(&id))
	if !ok {
		return nil
	}

	res, err := c.backend.Ask(ctx, api.AskRequest{
		UserID:     c.userID,
		MaterialID: id,
		Question:   question,
	})
	return c.finish(inv, err, func(s *State) {
		s.Answer = res.Answer
	}, nil)
}

// withMaterial is a begin precondition that copies the current material id
// into id.
func (c *Controller) withMaterial(id *api.MaterialID) func(*State) bool {
	return func(s *State) bool {
		if s.Material == nil {
			return false
		}
		*id = s.Material.ID
		return true
	}
}

func (c *Controller) generateInput(id api.MaterialID) api.GenerateInput {
	return api.GenerateInput{UserID: c.userID, MaterialID: id, TopicIndex: DefaultTopicIndex}
}

// continueAfterGenerate decides whether the list is still reloaded after a
// failed generate request. A rejected request may still leave earlier items
// on the backend; a transport failure ends the operation.
func (c *Controller) continueAfterGenerate(inv *invocation, err error) bool {
	var status *api.ErrStatus
	if !errors.As(err, &status) {
		return false
	}
	c.log.Warn("generate request rejected, reloading list",
		"op", inv.op,
		"request_id", inv.id,
		"status", status.StatusCode,
	)
	return true
}

// begin registers a new invocation of op, superseding any earlier one, and
// returns the context its requests must use. ready, if set, runs under the
// same lock that records the material generation; when it reports false
// nothing is registered and ok is false.
func (c *Controller) begin(ctx context.Context, op Op, ready func(*State) bool) (_ context.Context, _ *invocation, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ready != nil && !ready(&c.state) {
		return ctx, nil, false
	}

	id := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	ctx = api.WithRequestID(ctx, id)

	if prev := c.inflight[op]; prev != nil {
		prev.cancel()
		c.log.Debug("operation superseded", "op", op, "request_id", prev.id)
	}

	inv := &invocation{op: op, id: id, gen: c.generation, cancel: cancel}
	c.inflight[op] = inv
	c.state.Ops[op] = OpState{
		Status:       StatusPending,
		InvocationID: id,
		StartedAt:    time.Now(),
	}
	c.log.Debug("operation started", "op", op, "request_id", id, "user_id", c.userID)
	return ctx, inv, true
}

// finish settles an invocation. Results of superseded invocations are
// dropped and ErrSuperseded is returned. onSuccess or onFailure (either may
// be nil) run under the lock. A cancelled invocation returns to idle.
func (c *Controller) finish(inv *invocation, err error, onSuccess, onFailure func(*State)) error {
	defer inv.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight[inv.op] != inv || inv.gen != c.generation {
		c.log.Debug("discarding stale result", "op", inv.op, "request_id", inv.id)
		return ErrSuperseded
	}
	delete(c.inflight, inv.op)

	st := c.state.Ops[inv.op]
	st.FinishedAt = time.Now()

	switch {
	case err == nil:
		st.Status = StatusSucceeded
		st.Err = nil
		if onSuccess != nil {
			onSuccess(&c.state)
		}
		c.log.Info("operation succeeded",
			"op", inv.op,
			"request_id", inv.id,
			"duration_ms", st.FinishedAt.Sub(st.StartedAt).Milliseconds(),
		)
	case errors.Is(err, context.Canceled):
		st.Status = StatusIdle
		c.log.Debug("operation cancelled", "op", inv.op, "request_id", inv.id)
	default:
		st.Status = StatusFailed
		st.Err = err
		if onFailure != nil {
			onFailure(&c.state)
		}
		c.log.Warn("operation failed", "op", inv.op, "request_id", inv.id, "error", err)
	}

	c.state.Ops[inv.op] = st
	return err
}
