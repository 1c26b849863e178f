package welcome

import (
	"math"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vectortutor/internal/router"
	"github.com/abhisek/vectortutor/internal/screen"
	"github.com/abhisek/vectortutor/internal/ui/layout"
	"github.com/abhisek/vectortutor/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

// Tagline is shown under the banner.
const Tagline = "Multi-agent study copilot that reads your notes, makes flashcards and quizzes, plans revision, and answers doubts from your own material."

const (
	sceneRows   = 7
	sceneCols   = 29
	scenePoints = 8
)

type tickMsg time.Time

// WelcomeScreen shows an animated splash before handing over to the home
// screen. The scene is mounted once per run.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, renderScene(w.tickCount))

	if w.elapsed >= phase1End {
		bannerWidth := width
		if height < 26 {
			bannerWidth = 0
		}
		sections = append(sections, "", RenderBanner(bannerWidth), "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Align(lipgloss.Center).
			Render(layout.Wrap(Tagline, min(width-4, 70)))
		sections = append(sections, tagline)
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, hint)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderScene draws points orbiting a center node, rotated by frame.
func renderScene(frame int) string {
	grid := make([][]rune, sceneRows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", sceneCols))
	}

	cr, cc := sceneRows/2, sceneCols/2
	grid[cr][cc] = '◉'

	phase := float64(frame) * 0.15
	for i := 0; i < scenePoints; i++ {
		a := phase + 2*math.Pi*float64(i)/scenePoints
		r := cr + int(math.Round(math.Sin(a)*float64(cr)))
		c := cc + int(math.Round(math.Cos(a)*float64(cc)))
		if r >= 0 && r < sceneRows && c >= 0 && c < sceneCols {
			glyph := '·'
			if i%2 == 0 {
				glyph = '✦'
			}
			grid[r][c] = glyph
		}
	}

	lines := make([]string, sceneRows)
	for r := range grid {
		lines[r] = string(grid[r])
	}

	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(lines, "\n"))
}
