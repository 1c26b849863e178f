package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vectortutor/internal/screen"
	"github.com/abhisek/vectortutor/internal/session"
	"github.com/abhisek/vectortutor/internal/ui/components"
	"github.com/abhisek/vectortutor/internal/ui/layout"
	"github.com/abhisek/vectortutor/internal/ui/theme"
)

// UploadScreen asks for a file path and uploads the file as study material.
type UploadScreen struct {
	ctrl  *session.Controller
	input components.TextInput
	tick  int
}

var _ screen.Screen = (*UploadScreen)(nil)
var _ screen.KeyHintProvider = (*UploadScreen)(nil)

// New creates an UploadScreen.
func New(ctrl *session.Controller) *UploadScreen {
	return &UploadScreen{
		ctrl:  ctrl,
		input: components.NewTextInput("path/to/notes.txt", 1024),
	}
}

func (s *UploadScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *UploadScreen) Title() string {
	return "Upload Study Material"
}

func (s *UploadScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Upload & Process"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *UploadScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SpinnerTickMsg:
		s.tick++
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			path := expandHome(s.input.Value())
			if path == "" {
				return s, nil
			}
			return s, screen.StartOp(session.OpUpload, func(ctx context.Context) error {
				return s.ctrl.Upload(ctx, path)
			})
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *UploadScreen) View(width, height int) string {
	st := s.ctrl.Snapshot()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Heading.Render("Text file to upload"))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	if line := components.StatusLine(st.Ops[session.OpUpload], "Processing...", s.tick); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if st.HasMaterial() {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).
			Render(fmt.Sprintf("Detected %d topics", st.TopicCount())))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), cw))
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
