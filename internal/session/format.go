package session

import (
	"fmt"
	"math"

	"github.com/abhisek/vectortutor/internal/api"
)

// FormatAccuracy renders a [0, 1] accuracy as a whole percentage, e.g. 0.75
// becomes "75%".
func FormatAccuracy(acc float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(acc*100)))
}

// BuildQuizAnswers builds the submission payload for a quiz.
//
// Selected is always 0: the option the user picked is not recorded, so every
// question is submitted as if the first option was chosen.
func BuildQuizAnswers(quiz []api.QuizQuestion) []api.QuizAnswer {
	answers := make([]api.QuizAnswer, len(quiz))
	for i, q := range quiz {
		answers[i] = api.QuizAnswer{CorrectIndex: q.CorrectIndex, Selected: 0}
	}
	return answers
}
