package home

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
	"github.com/abhisek/vectortutor/internal/router"
	"github.com/abhisek/vectortutor/internal/screens/upload"
	"github.com/abhisek/vectortutor/internal/session"
)

func newController(t *testing.T, replies ...api.MockReply) *session.Controller {
	t.Helper()
	ctrl := session.NewController(api.NewClient(api.NewMockTransport(replies...)), session.Options{UserID: "u1"})
	t.Cleanup(ctrl.Close)
	return ctrl
}

func TestMaterialItemsDisabledUntilUpload(t *testing.T) {
	ctrl := newController(t, api.MockReply{Body: json.RawMessage(`{"material_id":"m1","topics":["a","b"]}`)})
	h := New(ctrl, nil)

	for _, i := range []int{itemSummary, itemFlashcards, itemQuiz, itemAsk, itemHistory} {
		assert.True(t, h.menu.Items[i].Disabled, "item %d", i)
	}
	assert.Contains(t, h.View(100, 30), "No material yet")

	// Down skips disabled entries and lands on Quit.
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, itemQuit, h.menu.Selected)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("notes"), 0o644))
	require.NoError(t, ctrl.Upload(context.Background(), path))

	h.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, itemAsk, h.menu.Selected)
	assert.Contains(t, h.View(100, 30), "Detected 2 topics")
}

func TestEnterPushesUploadScreen(t *testing.T) {
	h := New(newController(t), nil)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*upload.UploadScreen)
	assert.True(t, ok, "expected upload screen, got %T", push.Screen)
}

func TestFailedOperationListed(t *testing.T) {
	ctrl := newController(t, api.MockReply{Err: &api.ErrUnavailable{}})
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("notes"), 0o644))
	require.Error(t, ctrl.Upload(context.Background(), path))

	h := New(ctrl, nil)
	view := h.View(100, 30)
	assert.Contains(t, view, "upload:")
	assert.Contains(t, view, "Could not reach the backend")
}
