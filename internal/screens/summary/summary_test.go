package summary

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

func TestSummarizeAndScroll(t *testing.T) {
	long := strings.Repeat("Cells divide and grow. ", 200)
	body, err := json.Marshal(map[string]string{"summary": long})
	require.NoError(t, err)

	mock := api.NewMockTransport(
		api.MockReply{Body: json.RawMessage(`{"material_id":"m1","topics":[]}`)},
		api.MockReply{Body: body},
	)
	ctrl := session.NewController(api.NewClient(mock), session.Options{UserID: "u1"})
	t.Cleanup(ctrl.Close)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("notes"), 0o644))
	require.NoError(t, ctrl.Upload(context.Background(), path))

	s := New(ctrl)
	assert.Contains(t, s.View(100, 20), "Press Enter")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	start := cmd().(screen.StartOpMsg)
	require.NoError(t, start.Run(context.Background()))
	s.Update(screen.OpDoneMsg{Op: start.Op})

	assert.Contains(t, s.View(100, 20), "Cells divide and grow.")

	for i := 0; i < 500; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	s.View(100, 20)
	clamped := s.scrollOffset
	assert.Greater(t, clamped, 0)
	assert.Less(t, clamped, 500, "offset is clamped to the content")

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, clamped-1, s.scrollOffset)
}

func TestSummaryWithoutMaterial(t *testing.T) {
	ctrl := session.NewController(api.NewClient(api.NewMockTransport()), session.Options{UserID: "u1"})
	s := New(ctrl)

	assert.Contains(t, s.View(100, 20), "Upload material first")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	start := cmd().(screen.StartOpMsg)
	require.NoError(t, start.Run(context.Background()))
	assert.Equal(t, session.StatusIdle, ctrl.Snapshot().Status(session.OpSummary))
}
