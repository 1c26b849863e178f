package components

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vectortutor/internal/api"
	"github.com/abhisek/vectortutor/internal/session"
)

func TestMenuSkipsDisabled(t *testing.T) {
	called := false
	m := NewMenu([]MenuItem{
		{Label: "first", Disabled: true},
		{Label: "second", Action: func() tea.Cmd { called = true; return nil }},
		{Label: "third", Disabled: true},
		{Label: "fourth"},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("expected down to skip disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("expected up to return to 1, got %d", m.Selected)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !called {
		t.Error("expected enter to run the selected action")
	}
	if !strings.Contains(m.View(), "▸ second") {
		t.Errorf("expected selection marker, got %q", m.View())
	}
}

func TestWindowClampsOffset(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}

	offset := 10
	got := Window(lines, &offset, 2)
	if offset != 3 || strings.Join(got, "") != "de" {
		t.Errorf("Window = %v offset %d, want [d e] offset 3", got, offset)
	}

	offset = 0
	if got := Window(lines, &offset, 10); len(got) != 5 {
		t.Errorf("expected all lines when viewport is taller, got %v", got)
	}
	if got := Window(lines, &offset, 0); got != nil {
		t.Errorf("expected nil for empty viewport, got %v", got)
	}
}

func TestFollow(t *testing.T) {
	tests := []struct {
		cursor, offset, height, want int
	}{
		{cursor: 0, offset: 0, height: 3, want: 0},
		{cursor: 5, offset: 0, height: 3, want: 3},
		{cursor: 1, offset: 4, height: 3, want: 1},
		{cursor: 4, offset: 3, height: 3, want: 3},
	}
	for _, tt := range tests {
		if got := Follow(tt.cursor, tt.offset, tt.height); got != tt.want {
			t.Errorf("Follow(%d, %d, %d) = %d, want %d", tt.cursor, tt.offset, tt.height, got, tt.want)
		}
	}
}

func TestStatusLine(t *testing.T) {
	if got := StatusLine(session.OpState{Status: session.StatusIdle}, "Working", 0); got != "" {
		t.Errorf("idle should render nothing, got %q", got)
	}
	if got := StatusLine(session.OpState{Status: session.StatusSucceeded}, "Working", 0); got != "" {
		t.Errorf("succeeded should render nothing, got %q", got)
	}
	if got := StatusLine(session.OpState{Status: session.StatusPending}, "Working", 2); !strings.Contains(got, SpinnerFrames[2]+" Working") {
		t.Errorf("pending should show spinner and text, got %q", got)
	}
	failed := session.OpState{Status: session.StatusFailed, Err: &api.ErrStatus{StatusCode: 404}}
	if got := StatusLine(failed, "Working", 0); !strings.Contains(got, "HTTP 404") {
		t.Errorf("failed should describe the error, got %q", got)
	}
	other := session.OpState{Status: session.StatusFailed, Err: errors.New("read notes.txt: no such file")}
	if got := StatusLine(other, "Working", 0); !strings.Contains(got, "no such file") {
		t.Errorf("failed should include the error text, got %q", got)
	}
}

func TestProgressBarRoundsPercent(t *testing.T) {
	got := NewProgressBar("Accuracy", 2.0/3.0, true, 40).View()
	if !strings.Contains(got, "67%") {
		t.Errorf("expected 67%%, got %q", got)
	}
}

func TestOptionListLabels(t *testing.T) {
	view := OptionList{Question: "Q?", Options: []string{"x", "y"}, CorrectIndex: 1}.View()
	if !strings.Contains(view, "A)  x") || !strings.Contains(view, "B)  y") {
		t.Errorf("unexpected option labels: %q", view)
	}
	if OptionLabel(9) != "10" {
		t.Errorf("OptionLabel(9) = %q", OptionLabel(9))
	}
}
