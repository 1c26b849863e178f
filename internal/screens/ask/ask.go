package ask

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vectortutor/internal/screen"
	"github.com/abhisek/vectortutor/internal/session"
	"github.com/abhisek/vectortutor/internal/ui/components"
	"github.com/abhisek/vectortutor/internal/ui/layout"
	"github.com/abhisek/vectortutor/internal/ui/theme"
)

// AskScreen sends free-form questions about the uploaded material.
type AskScreen struct {
	ctrl  *session.Controller
	input components.TextInput
	asked string
	tick  int
}

var _ screen.Screen = (*AskScreen)(nil)
var _ screen.KeyHintProvider = (*AskScreen)(nil)

// New creates an AskScreen.
func New(ctrl *session.Controller) *AskScreen {
	return &AskScreen{
		ctrl:  ctrl,
		input: components.NewTextInput("Ask about your uploaded notes...", 500),
	}
}

func (s *AskScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *AskScreen) Title() string {
	return "Ask a Doubt"
}

func (s *AskScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AskScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SpinnerTickMsg:
		s.tick++
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			question := s.input.Value()
			if question == "" || !s.ctrl.Snapshot().HasMaterial() {
				return s, nil
			}
			s.asked = question
			s.input.Reset()
			return s, screen.StartOp(session.OpAsk, func(ctx context.Context) error {
				return s.ctrl.Ask(ctx, question)
			})
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *AskScreen) View(width, height int) string {
	st := s.ctrl.Snapshot()
	cw := components.ContentWidth(width)

	var sections []string
	if !st.HasMaterial() {
		sections = append(sections, theme.Hint.Render("Upload material first."))
	}
	sections = append(sections, components.Card(s.input.View(), cw))

	if line := components.StatusLine(st.Ops[session.OpAsk], "Thinking...", s.tick); line != "" {
		sections = append(sections, line)
	}
	if s.asked != "" {
		sections = append(sections, theme.Hint.Render("You asked: "+s.asked))
	}
	if st.Answer != "" {
		sections = append(sections, theme.Body.Render(layout.Wrap(st.Answer, cw)))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+strings.Join(sections, "\n\n"))
}
