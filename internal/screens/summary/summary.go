package summary

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vectortutor/internal/screen"
	"github.com/abhisek/vectortutor/internal/session"
	"github.com/abhisek/vectortutor/internal/ui/components"
	"github.com/abhisek/vectortutor/internal/ui/layout"
	"github.com/abhisek/vectortutor/internal/ui/theme"
)

// SummaryScreen requests and shows the summary of the current material.
type SummaryScreen struct {
	ctrl         *session.Controller
	scrollOffset int
	tick         int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen.
func New(ctrl *session.Controller) *SummaryScreen {
	return &SummaryScreen{ctrl: ctrl}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summarize"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Summarize Material"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SpinnerTickMsg:
		s.tick++

	case screen.OpDoneMsg:
		if msg.Op == session.OpSummary {
			s.scrollOffset = 0
		}

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, screen.StartOp(session.OpSummary, s.ctrl.Summarize)
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			s.scrollOffset++
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	st := s.ctrl.Snapshot()
	cw := components.ContentWidth(width)

	var lines []string
	if line := components.StatusLine(st.Ops[session.OpSummary], "Summarizing...", s.tick); line != "" {
		lines = append(lines, line, "")
	}

	switch {
	case !st.HasMaterial():
		lines = append(lines, theme.Hint.Render("Upload material first."))
	case st.Summary == "":
		lines = append(lines, theme.Hint.Render("Press Enter to summarize the material."))
	default:
		lines = append(lines, strings.Split(layout.Wrap(st.Summary, cw), "\n")...)
	}

	lines = components.Window(lines, &s.scrollOffset, height-2)
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+body)
}
