package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vectortutor/internal/router"
	"github.com/abhisek/vectortutor/internal/screen"
	"github.com/abhisek/vectortutor/internal/screens/ask"
	"github.com/abhisek/vectortutor/internal/screens/flashcards"
	"github.com/abhisek/vectortutor/internal/screens/history"
	"github.com/abhisek/vectortutor/internal/screens/quiz"
	"github.com/abhisek/vectortutor/internal/screens/summary"
	"github.com/abhisek/vectortutor/internal/screens/upload"
	"github.com/abhisek/vectortutor/internal/session"
	"github.com/abhisek/vectortutor/internal/store"
	"github.com/abhisek/vectortutor/internal/ui/components"
	"github.com/abhisek/vectortutor/internal/ui/layout"
	"github.com/abhisek/vectortutor/internal/ui/theme"
)

// menu positions
const (
	itemUpload = iota
	itemSummary
	itemFlashcards
	itemQuiz
	itemAsk
	itemHistory
	itemQuit
)

// HomeScreen lists the study actions and the state of the session.
type HomeScreen struct {
	ctrl *session.Controller
	menu components.Menu
	tick int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. eventRepo may be nil, in which case the history
// entry is disabled.
func New(ctrl *session.Controller, eventRepo store.EventRepo) *HomeScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := factory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		itemUpload:     {Label: "Upload Study Material", Action: push(func() screen.Screen { return upload.New(ctrl) })},
		itemSummary:    {Label: "Summarize", Action: push(func() screen.Screen { return summary.New(ctrl) })},
		itemFlashcards: {Label: "Flashcards", Action: push(func() screen.Screen { return flashcards.New(ctrl) })},
		itemQuiz:       {Label: "Quiz", Action: push(func() screen.Screen { return quiz.New(ctrl) })},
		itemAsk:        {Label: "Ask a Doubt", Action: push(func() screen.Screen { return ask.New(ctrl) })},
		itemHistory:    {Label: "Request History", Action: push(func() screen.Screen { return history.New(eventRepo) }), Disabled: eventRepo == nil},
		itemQuit:       {Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	h := &HomeScreen{
		ctrl: ctrl,
		menu: components.NewMenu(items),
	}
	h.refresh()
	return h
}

// refresh enables the material-dependent entries once an upload succeeded.
func (h *HomeScreen) refresh() {
	noMaterial := !h.ctrl.Snapshot().HasMaterial()
	for _, i := range []int{itemSummary, itemFlashcards, itemQuiz, itemAsk} {
		h.menu.Items[i].Disabled = noMaterial
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.SpinnerTickMsg); ok {
		h.tick++
		return h, nil
	}
	h.refresh()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.refresh()
	st := h.ctrl.Snapshot()
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("Your study session"))
	sections = append(sections, components.Card(renderMaterial(st), cw))

	sections = append(sections, h.menu.View())

	if activity := renderActivity(st, h.tick); activity != "" {
		sections = append(sections, activity)
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderMaterial(st session.State) string {
	if !st.HasMaterial() {
		return theme.Hint.Render("No material yet. Upload a text file to begin.")
	}
	return fmt.Sprintf("Material %s\n%s",
		theme.Heading.Render(st.Material.ID.String()),
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("Detected %d topics", st.TopicCount())),
	)
}

// renderActivity lists operations that are running or failed.
func renderActivity(st session.State, tick int) string {
	var lines []string
	for _, op := range session.Ops {
		line := components.StatusLine(st.Ops[op], string(op)+"...", tick)
		if line == "" {
			continue
		}
		if st.Status(op) == session.StatusFailed {
			line = theme.Hint.Render(string(op)+": ") + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
