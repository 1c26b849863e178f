package quiz

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

// QuizScreen generates quiz questions, lists them and submits them for
// grading.
type QuizScreen struct {
	ctrl         *session.Controller
	cursor       int
	scrollOffset int
	graded       bool
	tick         int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen.
func New(ctrl *session.Controller) *QuizScreen {
	return &QuizScreen{ctrl: ctrl}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "S", Description: "Submit"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SpinnerTickMsg:
		s.tick++

	case screen.OpDoneMsg:
		switch msg.Op {
		case session.OpQuiz:
			s.cursor, s.scrollOffset = 0, 0
			s.graded = false
		case session.OpSubmit:
			s.graded = msg.Err == nil
		}

	case tea.KeyPressMsg:
		n := len(s.ctrl.Snapshot().Quiz)
		switch msg.String() {
		case "enter":
			return s, screen.StartOp(session.OpQuiz, s.ctrl.GenerateQuiz)
		case "s":
			if n == 0 {
				return s, nil
			}
			return s, screen.StartOp(session.OpSubmit, s.ctrl.SubmitQuiz)
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < n-1 {
				s.cursor++
			}
		}
	}
	return s, nil
}

func (s *QuizScreen) View(width, height int) string {
	st := s.ctrl.Snapshot()
	cw := components.ContentWidth(width)

	var header []string
	for _, op := range []session.Op{session.OpQuiz, session.OpSubmit} {
		pending := "Generating quiz..."
		if op == session.OpSubmit {
			pending = "Grading..."
		}
		if line := components.StatusLine(st.Ops[op], pending, s.tick); line != "" {
			header = append(header, line)
		}
	}
	if s.graded && st.Accuracy != nil {
		header = append(header, components.NewProgressBar("Accuracy", *st.Accuracy, true, cw).View())
	}

	switch {
	case !st.HasMaterial():
		header = append(header, theme.Hint.Render("Upload material first."))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(header, "\n"))
	case len(st.Quiz) == 0:
		header = append(header, theme.Hint.Render("No quiz yet. Press Enter to generate."))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(header, "\n"))
	}

	if s.cursor >= len(st.Quiz) {
		s.cursor = len(st.Quiz) - 1
	}

	// One block per question; the cursor block is kept in view.
	blocks := make([]string, len(st.Quiz))
	for i, q := range st.Quiz {
		prefix := "  "
		if i == s.cursor {
			prefix = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ")
		}
		list := components.OptionList{
			Question:     fmt.Sprintf("%d. %s", i+1, q.Question),
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Reveal:       s.graded,
		}
		blocks[i] = prefix + strings.TrimRight(list.View(), "\n")
	}

	visible := (height - len(header) - 2) / 6
	if visible < 1 {
		visible = 1
	}
	s.scrollOffset = components.Follow(s.cursor, s.scrollOffset, visible)
	shown := components.Window(blocks, &s.scrollOffset, visible)

	body := strings.Join(append(header, "", strings.Join(shown, "\n\n")), "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(body))
}
