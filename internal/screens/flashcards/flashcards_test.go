package flashcards

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

const cards = `[{"question":"What is ATP?","answer":"Energy currency"},{"question":"What is DNA?","answer":"Genetic code"}]`

func reply(body string) api.MockReply {
	return api.MockReply{Body: json.RawMessage(body)}
}

func newScreen(t *testing.T, replies ...api.MockReply) *FlashcardsScreen {
	t.Helper()
	all := append([]api.MockReply{reply(`{"material_id":7,"topics":["a"]}`)}, replies...)
	ctrl := session.NewController(api.NewClient(api.NewMockTransport(all...)), session.Options{UserID: "u1"})
	t.Cleanup(ctrl.Close)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("notes"), 0o644))
	require.NoError(t, ctrl.Upload(context.Background(), path))
	return New(ctrl)
}

func generate(t *testing.T, s *FlashcardsScreen) {
	t.Helper()
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	start := cmd().(screen.StartOpMsg)
	assert.Equal(t, session.OpFlashcards, start.Op)
	s.Update(screen.OpDoneMsg{Op: start.Op, Err: start.Run(context.Background())})
}

func TestFlipAndBrowse(t *testing.T) {
	s := newScreen(t, reply(`{}`), reply(cards))
	generate(t, s)

	view := s.View(100, 30)
	assert.Contains(t, view, "Card 1 of 2")
	assert.Contains(t, view, "What is ATP?")
	assert.NotContains(t, view, "Energy currency")

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	assert.Contains(t, s.View(100, 30), "Energy currency")

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	view = s.View(100, 30)
	assert.Contains(t, view, "Card 2 of 2")
	assert.NotContains(t, view, "Genetic code", "moving to a card hides its answer")

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, 1, s.index)

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, 0, s.index)
}

func TestRegenerateResetsPosition(t *testing.T) {
	s := newScreen(t, reply(`{}`), reply(cards), reply(`{}`), reply(cards))
	generate(t, s)
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	require.Equal(t, 1, s.index)

	generate(t, s)
	assert.Equal(t, 0, s.index)
}

func TestFailedReloadShowsError(t *testing.T) {
	s := newScreen(t, reply(`{}`), api.MockReply{Err: &api.ErrUnavailable{}})
	generate(t, s)

	view := s.View(100, 30)
	assert.Contains(t, view, "✗")
	assert.Contains(t, view, "No flashcards yet")
}
