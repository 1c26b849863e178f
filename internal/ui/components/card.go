package components

import "github.com/abhisek/vectortutor/internal/ui/theme"

// ContentWidth returns the uniform inner width used by the study screens so
// that stacked boxes line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border box of width cw.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}
