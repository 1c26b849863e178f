package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vectortutor/internal/router"
	"github.com/abhisek/vectortutor/internal/screen"
	"github.com/abhisek/vectortutor/internal/store"
	"github.com/abhisek/vectortutor/internal/ui/components"
	"github.com/abhisek/vectortutor/internal/ui/layout"
	"github.com/abhisek/vectortutor/internal/ui/theme"
)

// pageSize bounds how many journal rows are loaded.
const pageSize = 100

type historyLoadedMsg struct {
	Calls []store.APICallRecord
	Err   error
}

// HistoryScreen lists recent backend requests from the journal.
type HistoryScreen struct {
	eventRepo    store.EventRepo
	calls        []store.APICallRecord
	selected     int
	scrollOffset int
	expanded     map[int]bool
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load
}

func (s *HistoryScreen) load() tea.Msg {
	calls, err := s.eventRepo.QueryAPICalls(context.Background(), store.QueryOpts{Limit: pageSize})
	return historyLoadedMsg{Calls: calls, Err: err}
}

func (s *HistoryScreen) Title() string {
	return "Request History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.calls = msg.Calls
			s.expanded = make(map[int]bool)
			if s.selected >= len(s.calls) {
				s.selected = 0
			}
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.calls)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "r":
			return s, s.load
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.calls) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No requests yet. Upload some material!")
	}

	// Rows and their expansions are flattened so scrolling works on lines.
	var lines []string
	cursorLine := 0
	for i, call := range s.calls {
		if i == s.selected {
			cursorLine = len(lines)
		}
		lines = append(lines, renderRow(call, i == s.selected))
		if s.expanded[i] {
			lines = append(lines, renderDetail(call, width-8)...)
		}
	}

	s.scrollOffset = components.Follow(cursorLine, s.scrollOffset, height-1)
	visible := components.Window(lines, &s.scrollOffset, height-1)

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range visible {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRow(call store.APICallRecord, selected bool) string {
	mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	if !call.Success {
		mark = theme.Incorrect.Render("✗")
	}

	status := "---"
	if call.StatusCode > 0 {
		status = fmt.Sprintf("%d", call.StatusCode)
	}

	prefix := "  "
	if selected {
		prefix = "> "
	}

	line := fmt.Sprintf("%s%s  %-19s  %-6s %-28s %s  %5dms",
		prefix, call.Timestamp.Local().Format("Jan 02 15:04:05"), call.Action,
		call.Method, truncate(call.Path, 28), status, call.LatencyMs)

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(line) + " " + mark
}

func renderDetail(call store.APICallRecord, width int) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := []string{
		dim.Render(fmt.Sprintf("    request %s  attempt %d", call.RequestID, call.Attempt)),
	}
	if call.ErrorMessage != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).
			Render("    "+truncate(call.ErrorMessage, width)))
	}
	if call.ResponseBody != "" {
		lines = append(lines, dim.Italic(true).Render("    "+truncate(call.ResponseBody, width)))
	}
	return lines
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
