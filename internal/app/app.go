package app

import (
	"context"
	"fmt"
	"net/url"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vectortutor/internal/logger"
	"github.com/abhisek/vectortutor/internal/router"
	"github.com/abhisek/vectortutor/internal/screen"
	"github.com/abhisek/vectortutor/internal/screens/home"
	"github.com/abhisek/vectortutor/internal/screens/welcome"
	"github.com/abhisek/vectortutor/internal/session"
	"github.com/abhisek/vectortutor/internal/store"
	"github.com/abhisek/vectortutor/internal/ui/components"
	"github.com/abhisek/vectortutor/internal/ui/layout"
)

// Options configures the terminal app.
type Options struct {
	Controller *session.Controller

	// EventRepo backs the history screen. May be nil.
	EventRepo store.EventRepo

	Logger *logger.Logger

	// SkipSplash starts on the home screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx    context.Context
	ctrl   *session.Controller
	log    *logger.Logger
	router *router.Router
	width  int
	height int

	running int  // operations started and not yet reported
	ticking bool // a SpinnerTickMsg is scheduled
	tick    int
}

// newAppModel creates a new AppModel showing the splash, then home.
func newAppModel(ctx context.Context, opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	homeFactory := func() screen.Screen {
		return home.New(opts.Controller, opts.EventRepo)
	}

	var initial screen.Screen = welcome.New(homeFactory)
	if opts.SkipSplash {
		initial = homeFactory()
	}

	return AppModel{
		ctx:    ctx,
		ctrl:   opts.Controller,
		log:    opts.Logger,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StartOpMsg:
		m.running++
		m.log.Debug("operation started", "op", msg.Op)
		cmds := []tea.Cmd{msg.Exec(m.ctx)}
		if !m.ticking {
			m.ticking = true
			cmds = append(cmds, screen.SpinnerTick())
		}
		return m, tea.Batch(cmds...)

	case screen.OpDoneMsg:
		if m.running > 0 {
			m.running--
		}
		if msg.Err != nil {
			m.log.Debug("operation returned error", "op", msg.Op, "error", msg.Err)
		}
		return m, m.router.Update(msg)

	case screen.SpinnerTickMsg:
		m.tick++
		cmd := m.router.Update(msg)
		if m.running == 0 {
			m.ticking = false
			return m, cmd
		}
		return m, tea.Batch(cmd, screen.SpinnerTick())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.ctrl.Close()
			return m, tea.Quit
		}
		if _, ok := msg.(tea.KeyPressMsg); ok && m.ctrl.Snapshot().Notice != "" {
			m.ctrl.DismissNotice()
			return m, nil
		}
		if msg.String() == "esc" {
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render composes header, active screen (or notice modal) and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	st := m.ctrl.Snapshot()
	header := layout.RenderHeader(title, m.headerStatus(st), m.width)

	var footerHints []layout.KeyHint
	switch {
	case st.Notice != "":
		footerHints = []layout.KeyHint{{Key: "Any key", Description: "Dismiss"}}
	case active != nil:
		if p, ok := active.(screen.KeyHintProvider); ok {
			footerHints = p.KeyHints()
		}
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	var content string
	if st.Notice != "" {
		content = layout.RenderModal("Quiz graded", st.Notice, m.width, contentHeight)
	} else {
		content = m.router.View(m.width, contentHeight)
	}
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// headerStatus shows a spinner while requests are in flight, otherwise the
// backend host and user.
func (m AppModel) headerStatus(st session.State) string {
	if st.Busy() {
		return components.Spinner(m.tick) + " working"
	}
	host := st.BackendURL
	if u, err := url.Parse(st.BackendURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return fmt.Sprintf("%s · %s", host, st.UserID)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
