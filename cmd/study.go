package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vectortutor/internal/api"
	"github.com/abhisek/vectortutor/internal/session"
)

var studyCmd = &cobra.Command{
	Use:   "study <file>",
	Short: "Upload a file and print its summary, flashcards and quiz",
	Long: `Run a study session without the terminal UI: upload the file, then print
the summary, flashcards and quiz for its first topic. With --ask, each line
read from stdin is sent as a question.`,
	Args: cobra.ExactArgs(1),
	RunE: runStudy,
}

func init() {
	studyCmd.Flags().Bool("ask", false, "Read questions from stdin after printing the material")
	studyCmd.Flags().Bool("submit", false, "Submit the quiz and print the accuracy")
}

func runStudy(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	ask, _ := cmd.Flags().GetBool("ask")
	submit, _ := cmd.Flags().GetBool("submit")

	return study(cmd.Context(), d.ctrl, args[0], studyOptions{
		ask:    ask,
		submit: submit,
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
	})
}

type studyOptions struct {
	ask    bool
	submit bool
	in     io.Reader
	out    io.Writer
}

// study drives the controller through one pass over a file.
func study(ctx context.Context, ctrl *session.Controller, path string, opts studyOptions) error {
	out := opts.out
	if err := ctrl.Upload(ctx, path); err != nil {
		return fmt.Errorf("upload: %s", api.Describe(err))
	}
	st := ctrl.Snapshot()
	if !st.HasMaterial() {
		return fmt.Errorf("no material uploaded from %q", path)
	}
	fmt.Fprintf(out, "Material %s: detected %d topics\n\n", st.Material.ID, st.TopicCount())

	// Each step reports its own failure and the run continues.
	report := func(step string, err error) bool {
		if err != nil {
			fmt.Fprintf(out, "%s failed: %s\n\n", step, api.Describe(err))
			return false
		}
		return true
	}

	if report("summary", ctrl.Summarize(ctx)) {
		fmt.Fprintf(out, "SUMMARY\n%s\n\n", ctrl.Snapshot().Summary)
	}

	if report("flashcards", ctrl.GenerateFlashcards(ctx)) {
		fmt.Fprintln(out, "FLASHCARDS")
		for i, c := range ctrl.Snapshot().Flashcards {
			fmt.Fprintf(out, "%d. Q: %s\n   A: %s\n", i+1, c.Question, c.Answer)
		}
		fmt.Fprintln(out)
	}

	if report("quiz", ctrl.GenerateQuiz(ctx)) {
		fmt.Fprintln(out, "QUIZ")
		for i, q := range ctrl.Snapshot().Quiz {
			fmt.Fprintf(out, "%d. %s\n", i+1, q.Question)
			for j, o := range q.Options {
				fmt.Fprintf(out, "   %c) %s\n", 'A'+j, o)
			}
		}
		fmt.Fprintln(out)
	}

	if opts.submit && report("submit", ctrl.SubmitQuiz(ctx)) {
		if st := ctrl.Snapshot(); st.Accuracy != nil {
			fmt.Fprintf(out, "Accuracy: %s\n\n", session.FormatAccuracy(*st.Accuracy))
		}
	}

	if !opts.ask {
		return nil
	}

	scanner := bufio.NewScanner(opts.in)
	for {
		fmt.Fprint(out, "? ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		q := strings.TrimSpace(scanner.Text())
		if q == "" {
			continue
		}
		if report("ask", ctrl.Ask(ctx, q)) {
			fmt.Fprintln(out, ctrl.Snapshot().Answer)
		}
	}
}
