package ask

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vectortutor/internal/api"
	"github.com/abhisek/vectortutor/internal/screen"
	"github.com/abhisek/vectortutor/internal/session"
)

func newController(t *testing.T, upload bool, replies ...api.MockReply) (*session.Controller, *api.MockTransport) {
	t.Helper()
	if upload {
		replies = append([]api.MockReply{{Body: json.RawMessage(`{"material_id":"m1","topics":[]}`)}}, replies...)
	}
	mock := api.NewMockTransport(replies...)
	ctrl := session.NewController(api.NewClient(mock), session.Options{UserID: "u1"})
	t.Cleanup(ctrl.Close)

	if upload {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("notes"), 0o644))
		require.NoError(t, ctrl.Upload(context.Background(), path))
	}
	return ctrl, mock
}

func TestAskShowsAnswer(t *testing.T) {
	ctrl, mock := newController(t, true, api.MockReply{Body: json.RawMessage(`{"answer":"ATP stores energy."}`)})
	s := New(ctrl)
	s.input.SetValue("what stores energy?")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	start := cmd().(screen.StartOpMsg)
	assert.Equal(t, session.OpAsk, start.Op)
	assert.Empty(t, s.input.Value(), "input is cleared once the question is sent")

	require.NoError(t, start.Run(context.Background()))
	assert.Equal(t, []string{"upload", "ask"}, mock.Actions())

	view := s.View(100, 30)
	assert.Contains(t, view, "You asked: what stores energy?")
	assert.Contains(t, view, "ATP stores energy.")
}

func TestBlankQuestionIsIgnored(t *testing.T) {
	ctrl, mock := newController(t, true)
	s := New(ctrl)
	s.input.SetValue("   ")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, mock.CallCount())
}

func TestAskWithoutMaterialKeepsInput(t *testing.T) {
	ctrl, mock := newController(t, false)
	s := New(ctrl)
	s.input.SetValue("anything?")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "anything?", s.input.Value())
	assert.Zero(t, mock.CallCount())
	assert.Contains(t, s.View(100, 30), "Upload material first")
}
