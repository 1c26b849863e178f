package upload

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

func newScreen(t *testing.T, replies ...api.MockReply) (*UploadScreen, *api.MockTransport) {
	t.Helper()
	mock := api.NewMockTransport(replies...)
	ctrl := session.NewController(api.NewClient(mock), session.Options{UserID: "u1"})
	t.Cleanup(ctrl.Close)
	return New(ctrl), mock
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestEmptyPathDoesNothing(t *testing.T) {
	s, mock := newScreen(t)

	_, cmd := s.Update(enter())
	assert.Nil(t, cmd)
	assert.Zero(t, mock.CallCount())
}

func TestUploadShowsTopicCount(t *testing.T) {
	s, mock := newScreen(t, api.MockReply{Body: json.RawMessage(`{"material_id":"m9","topics":["a","b","c"]}`)})

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("cells and energy"), 0o644))
	s.input.SetValue("  " + path + " ")

	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	start, ok := cmd().(screen.StartOpMsg)
	require.True(t, ok)
	assert.Equal(t, session.OpUpload, start.Op)

	require.NoError(t, start.Run(context.Background()))
	assert.Equal(t, []string{"upload"}, mock.Actions())
	assert.Contains(t, s.View(100, 30), "Detected 3 topics")
}

func TestUploadMissingFileShowsError(t *testing.T) {
	s, mock := newScreen(t)
	s.input.SetValue(filepath.Join(t.TempDir(), "missing.txt"))

	_, cmd := s.Update(enter())
	start := cmd().(screen.StartOpMsg)
	require.Error(t, start.Run(context.Background()))

	assert.Zero(t, mock.CallCount())
	assert.Contains(t, s.View(100, 30), "✗")
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "notes.txt"), expandHome("~/notes.txt"))
	assert.Equal(t, "/tmp/notes.txt", expandHome("/tmp/notes.txt"))
}
