package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vectortutor/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// OptionLabel returns the letter shown before option i.
func OptionLabel(i int) string {
	if i >= 0 && i < len(optionLabels) {
		return optionLabels[i]
	}
	return fmt.Sprintf("%d", i+1)
}

// OptionList renders a multiple-choice question. When reveal is set the
// correct option is highlighted.
type OptionList struct {
	Question     string
	Options      []string
	CorrectIndex int
	Reveal       bool
}

// View renders the question and its lettered options.
func (o OptionList) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(o.Question) + "\n"
	for i, opt := range o.Options {
		line := fmt.Sprintf("   %s)  %s", OptionLabel(i), opt)
		switch {
		case o.Reveal && i == o.CorrectIndex:
			s += theme.Correct.Render(line)
		case o.Reveal:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
		default:
			s += theme.Body.Render(line)
		}
		s += "\n"
	}
	return s
}
