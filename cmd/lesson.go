package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/expertmaker/internal/lesson"
	"github.com/abhisek/expertmaker/internal/quiz"
	"github.com/abhisek/expertmaker/internal/studio"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson <session-id>",
	Short: "Show the deep-work timeline for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := cmd.Context()
		p, err := svc.Plan(ctx)
		if err != nil {
			return err
		}
		s, wk, ok := p.Session(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", studio.ErrSessionNotFound, args[0])
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Week %d · %s: %s\n", wk.WeekNumber, s.TopicTitle, s.Focus.Title)
		fmt.Fprintf(w, "%s\n\n", lesson.Brief(s, p.Pace, p.HoursPerWeek))
		fmt.Fprintf(w, "Mission: %s\n", lesson.Mission(s))

		steps := lesson.Build(s)
		fmt.Fprintf(w, "Timeline: %s\n", lesson.FormatMinutes(lesson.TotalMinutes(steps)))
		for _, st := range steps {
			fmt.Fprintf(w, "\n[%s] %s · %s\n", lesson.FormatMinutes(st.Minutes), st.Title, st.Focus)
			fmt.Fprintf(w, "  %s\n", st.Description)
			for _, a := range st.Actions {
				fmt.Fprintf(w, "  • %s\n", a)
			}
		}

		assessments, err := svc.SessionAttempts(ctx, s.ID, quiz.ModeAssessment)
		if err != nil {
			return err
		}
		for i := len(assessments) - 1; i >= 0; i-- {
			ws := assessments[i].Weaknesses
			if len(ws) == 0 {
				continue
			}
			fmt.Fprintln(w, "\nFrom your last assessment:")
			for _, m := range ws {
				fmt.Fprintf(w, "  • %s\n    %s (%s)\n", m.Question, m.Rationale, m.DocLink)
			}
			break
		}

		diagnostics, err := svc.SessionAttempts(ctx, s.ID, quiz.ModeDiagnostic)
		if err != nil {
			return err
		}
		if n := len(diagnostics); n > 0 {
			fmt.Fprintf(w, "\nDiagnostic baseline: %d%%\n", diagnostics[n-1].Score)
		}
		return nil
	},
}
