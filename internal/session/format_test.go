package session

import (
	"testing"

	"github.com/abhisek/vectortutor/internal/api"
)

func TestFormatAccuracy(t *testing.T) {
	tests := []struct {
		acc  float64
		want string
	}{
		{0.75, "75%"},
		{0, "0%"},
		{1, "100%"},
		{0.666, "67%"},
		{0.333, "33%"},
	}
	for _, tt := range tests {
		if got := FormatAccuracy(tt.acc); got != tt.want {
			t.Errorf("FormatAccuracy(%v) = %q, want %q", tt.acc, got, tt.want)
		}
	}
}

func TestBuildQuizAnswers(t *testing.T) {
	quiz := []api.QuizQuestion{
		{Question: "a", Options: []string{"x", "y", "z"}, CorrectIndex: 2},
		{Question: "b", Options: []string{"x", "y"}, CorrectIndex: 0},
	}
	got := BuildQuizAnswers(quiz)
	want := []api.QuizAnswer{{CorrectIndex: 2, Selected: 0}, {CorrectIndex: 0, Selected: 0}}
	if len(got) != len(want) {
		t.Fatalf("got %d answers, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("answer %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildQuizAnswersEmpty(t *testing.T) {
	if got := BuildQuizAnswers(nil); len(got) != 0 {
		t.Fatalf("expected no answers, got %v", got)
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusIdle:      "idle",
		StatusPending:   "pending",
		StatusSucceeded: "succeeded",
		StatusFailed:    "failed",
		Status(42):      "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
