package components

import (
	"github.com/abhisek/vectortutor/internal/api"
	"github.com/abhisek/vectortutor/internal/session"
	"github.com/abhisek/vectortutor/internal/ui/theme"
)

// SpinnerFrames animate pending operations.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner returns the frame for tick n.
func Spinner(n int) string {
	return SpinnerFrames[n%len(SpinnerFrames)]
}

// StatusLine describes the latest invocation of an operation. pending is
// shown while the call is in flight; an empty string is returned for idle and
// succeeded operations.
func StatusLine(st session.OpState, pending string, tick int) string {
	switch st.Status {
	case session.StatusPending:
		return theme.Pending.Render(Spinner(tick) + " " + pending)
	case session.StatusFailed:
		return theme.Incorrect.Render("✗ " + api.Describe(st.Err))
	}
	return ""
}
