package layout

import (
	"strings"
	"testing"
)

func TestRenderHeaderIncludesStatus(t *testing.T) {
	got := RenderHeader("Quiz", "localhost:8000 · demo-user", 100)
	for _, want := range []string{"VectorTutor", "Quiz", "localhost:8000 · demo-user"} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q: %q", want, got)
		}
	}
}

func TestRenderModal(t *testing.T) {
	got := RenderModal("Quiz graded", "Accuracy: 75%", 80, 20)
	if !strings.Contains(got, "Accuracy: 75%") || !strings.Contains(got, "press any key") {
		t.Errorf("unexpected modal: %q", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected too small below minimum width")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected minimum size to fit")
	}
}
