package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/expertmaker/internal/app"
	"github.com/abhisek/expertmaker/internal/quiz"
	"github.com/abhisek/expertmaker/internal/rank"
	"github.com/abhisek/expertmaker/internal/studio"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <session-id>",
	Short: "Take a session's quiz",
	Long: `Take the quiz for a plan session.

Assessments count toward your rank; diagnostics are recorded but never change
it. Without --answers the quiz runs interactively.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeVal, _ := cmd.Flags().GetString("mode")
		answersVal, _ := cmd.Flags().GetString("answers")

		mode, err := quiz.ParseMode(modeVal)
		if err != nil {
			return err
		}

		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if answersVal == "" {
			return app.RunQuiz(svc, args[0], mode)
		}

		p, err := svc.Plan(cmd.Context())
		if err != nil {
			return err
		}
		session, _, ok := p.Session(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", studio.ErrSessionNotFound, args[0])
		}
		responses, err := parseAnswers(answersVal, session.Quiz)
		if err != nil {
			return err
		}

		sub, err := svc.Submit(cmd.Context(), session.ID, mode, responses)
		if err != nil {
			return err
		}
		printSubmission(cmd.OutOrStdout(), sub)
		return nil
	},
}

func init() {
	quizCmd.Flags().String("mode", string(quiz.ModeAssessment), "Quiz mode: diagnostic or assessment")
	quizCmd.Flags().String("answers", "", "Comma-separated option letters or 0-based indexes, one per question (e.g. a,c,b,d)")
}

// parseAnswers maps "a,c,1,d" onto the session's questions in order.
func parseAnswers(s string, questions []quiz.Question) (quiz.Responses, error) {
	parts := strings.Split(s, ",")
	if len(parts) != len(questions) {
		return nil, fmt.Errorf("got %d answers for %d questions", len(parts), len(questions))
	}
	responses := make(quiz.Responses, len(questions))
	for i, raw := range parts {
		raw = strings.ToLower(strings.TrimSpace(raw))
		idx, err := strconv.Atoi(raw)
		if err != nil {
			if len(raw) != 1 || raw[0] < 'a' || raw[0] > 'z' {
				return nil, fmt.Errorf("invalid answer %q for question %d", raw, i+1)
			}
			idx = int(raw[0] - 'a')
		}
		q := questions[i]
		if idx < 0 || idx >= len(q.Options) {
			return nil, fmt.Errorf("answer %q out of range for question %d (%d options)", raw, i+1, len(q.Options))
		}
		responses[q.ID] = idx
	}
	return responses, nil
}

func printSubmission(w io.Writer, sub *studio.Submission) {
	status := "not passed"
	if sub.Record.Passed {
		status = "passed"
	}
	fmt.Fprintf(w, "Score: %d%% (%d/%d correct), %s\n", sub.Result.Score, sub.Result.Correct, sub.Result.Total, status)
	fmt.Fprintln(w, sub.Message)
	if sub.Outcome != nil {
		if sub.Outcome.LeveledUp {
			fmt.Fprintln(w, "Rank up!")
		}
		fmt.Fprintf(w, "Rank: %s belt, %d stripes, %d points\n",
			rank.BeltName(sub.Outcome.State), sub.Outcome.State.Stripes, sub.Outcome.State.Points)
	}
	if sub.Completed {
		fmt.Fprintf(w, "Session %s marked complete.\n", sub.Session.ID)
	}
	if len(sub.Result.Weaknesses) > 0 {
		fmt.Fprintln(w, "\nReview:")
		for _, wk := range sub.Result.Weaknesses {
			fmt.Fprintf(w, "  • %s\n    %s\n    %s\n", wk.Question, wk.Rationale, wk.DocLink)
		}
	}
}
