package flashcards

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vectortutor/internal/screen"
	"github.com/abhisek/vectortutor/internal/session"
	"github.com/abhisek/vectortutor/internal/ui/components"
	"github.com/abhisek/vectortutor/internal/ui/layout"
	"github.com/abhisek/vectortutor/internal/ui/theme"
)

// FlashcardsScreen generates flashcards and steps through them one at a time.
type FlashcardsScreen struct {
	ctrl     *session.Controller
	index    int
	revealed bool
	tick     int
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)

// New creates a FlashcardsScreen.
func New(ctrl *session.Controller) *FlashcardsScreen {
	return &FlashcardsScreen{ctrl: ctrl}
}

func (s *FlashcardsScreen) Init() tea.Cmd {
	return nil
}

func (s *FlashcardsScreen) Title() string {
	return "Flashcards"
}

func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "←→", Description: "Browse"},
		{Key: "Space", Description: "Flip"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SpinnerTickMsg:
		s.tick++

	case screen.OpDoneMsg:
		if msg.Op == session.OpFlashcards {
			s.index = 0
			s.revealed = false
		}

	case tea.KeyPressMsg:
		n := len(s.ctrl.Snapshot().Flashcards)
		switch msg.String() {
		case "enter":
			return s, screen.StartOp(session.OpFlashcards, s.ctrl.GenerateFlashcards)
		case "left", "h":
			if s.index > 0 {
				s.index--
				s.revealed = false
			}
		case "right", "l":
			if s.index < n-1 {
				s.index++
				s.revealed = false
			}
		case "space":
			s.revealed = !s.revealed
		}
	}
	return s, nil
}

func (s *FlashcardsScreen) View(width, height int) string {
	st := s.ctrl.Snapshot()
	cw := components.ContentWidth(width)

	var sections []string
	if line := components.StatusLine(st.Ops[session.OpFlashcards], "Generating flashcards...", s.tick); line != "" {
		sections = append(sections, line)
	}

	cards := st.Flashcards
	switch {
	case !st.HasMaterial():
		sections = append(sections, theme.Hint.Render("Upload material first."))
	case len(cards) == 0:
		sections = append(sections, theme.Hint.Render("No flashcards yet. Press Enter to generate."))
	default:
		if s.index >= len(cards) {
			s.index = len(cards) - 1
		}
		card := cards[s.index]

		var b strings.Builder
		b.WriteString(theme.Heading.Render("Q: " + card.Question))
		b.WriteString("\n\n")
		if s.revealed {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("A: " + card.Answer))
		} else {
			b.WriteString(theme.Hint.Render("Space to reveal the answer"))
		}
		sections = append(sections,
			theme.Subtitle.Render(fmt.Sprintf("Card %d of %d", s.index+1, len(cards))),
			components.Card(b.String(), cw),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}
