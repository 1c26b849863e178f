package screen

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vectortutor/internal/session"
)

// StartOpMsg asks the app to run a session operation off the UI goroutine.
type StartOpMsg struct {
	Op  session.Op
	Run func(ctx context.Context) error
}

// OpDoneMsg is delivered to the active screen when an operation returns.
type OpDoneMsg struct {
	Op  session.Op
	Err error
}

// StartOp returns a command requesting that run be executed for op.
func StartOp(op session.Op, run func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return StartOpMsg{Op: op, Run: run}
	}
}

// Exec runs msg and reports the result as an OpDoneMsg.
func (msg StartOpMsg) Exec(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return OpDoneMsg{Op: msg.Op, Err: msg.Run(ctx)}
	}
}

// SpinnerInterval is the frame period of pending indicators.
const SpinnerInterval = 100 * time.Millisecond

// SpinnerTickMsg advances pending indicators by one frame.
type SpinnerTickMsg struct{}

// SpinnerTick schedules the next SpinnerTickMsg.
func SpinnerTick() tea.Cmd {
	return tea.Tick(SpinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}
