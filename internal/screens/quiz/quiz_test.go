package quiz

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vectortutor/internal/api"
	"github.com/abhisek/vectortutor/internal/screen"
	"github.com/abhisek/vectortutor/internal/session"
)

const quizList = `[
	{"question":"2+2?","options":["3","4"],"correct_index":1},
	{"question":"Capital of France?","options":["Paris","Rome","Oslo"],"correct_index":0}
]`

func reply(body string) api.MockReply {
	return api.MockReply{Body: json.RawMessage(body)}
}

func newUploaded(t *testing.T, replies ...api.MockReply) (*session.Controller, *api.MockTransport) {
	t.Helper()
	all := append([]api.MockReply{reply(`{"material_id":"m1","topics":["a"]}`)}, replies...)
	mock := api.NewMockTransport(all...)
	ctrl := session.NewController(api.NewClient(mock), session.Options{UserID: "u1"})
	t.Cleanup(ctrl.Close)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("notes"), 0o644))
	require.NoError(t, ctrl.Upload(context.Background(), path))
	return ctrl, mock
}

// run executes the operation requested by cmd and feeds the result back.
func run(t *testing.T, s screen.Screen, cmd tea.Cmd) screen.Screen {
	t.Helper()
	require.NotNil(t, cmd)
	start, ok := cmd().(screen.StartOpMsg)
	require.True(t, ok, "expected StartOpMsg")
	err := start.Run(context.Background())
	s, _ = s.Update(screen.OpDoneMsg{Op: start.Op, Err: err})
	return s
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestGenerateShowsQuestions(t *testing.T) {
	ctrl, mock := newUploaded(t, reply(`{}`), reply(quizList))
	s := New(ctrl)

	_, cmd := s.Update(press("enter"))
	run(t, s, cmd)

	assert.Equal(t, []string{"upload", "quiz-generate", "quiz-list"}, mock.Actions())
	view := s.View(100, 30)
	assert.Contains(t, view, "2+2?")
	assert.Contains(t, view, "B)  4")
}

func TestSubmitOnEmptyQuizIsNoOp(t *testing.T) {
	ctrl, mock := newUploaded(t)
	s := New(ctrl)

	_, cmd := s.Update(press("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, mock.CallCount())
}

func TestSubmitRevealsAnswers(t *testing.T) {
	ctrl, mock := newUploaded(t, reply(`{}`), reply(quizList), reply(`{"accuracy":0.5}`))
	s := New(ctrl)

	_, cmd := s.Update(press("enter"))
	run(t, s, cmd)
	assert.False(t, s.graded)

	_, cmd = s.Update(press("s"))
	run(t, s, cmd)

	assert.True(t, s.graded)
	assert.Equal(t, "quiz-submit", mock.Actions()[3])
	assert.Equal(t, "Accuracy: 50%", ctrl.Snapshot().Notice)
	assert.Contains(t, s.View(100, 30), "50%")
}

func TestCursorStaysInRange(t *testing.T) {
	ctrl, _ := newUploaded(t, reply(`{}`), reply(quizList))
	s := New(ctrl)
	_, cmd := s.Update(press("enter"))
	run(t, s, cmd)

	for i := 0; i < 5; i++ {
		s.Update(press("down"))
	}
	assert.Equal(t, 1, s.cursor)
}

func TestNoMaterialHint(t *testing.T) {
	ctrl := session.NewController(api.NewClient(api.NewMockTransport()), session.Options{UserID: "u1"})
	s := New(ctrl)
	assert.True(t, strings.Contains(s.View(100, 30), "Upload material first"))
}
