package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/expertmaker/internal/plan"
)

var defaultTopics = []string{"oauth", "rag", "node", "system"}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and manage your study plan",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new plan (replaces the current plan and quiz history)",
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, _ := cmd.Flags().GetStringSlice("topic")
		weeks, _ := cmd.Flags().GetInt("weeks")
		hours, _ := cmd.Flags().GetInt("hours")
		paceVal, _ := cmd.Flags().GetString("pace")

		pace, err := plan.ParsePace(paceVal)
		if err != nil {
			return err
		}

		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		p, err := svc.Generate(cmd.Context(), plan.Request{
			Topics:       topics,
			Weeks:        weeks,
			HoursPerWeek: hours,
			Pace:         pace,
		})
		if err != nil {
			return err
		}
		printPlan(cmd.OutOrStdout(), p)
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		p, err := svc.Plan(cmd.Context())
		if err != nil {
			return err
		}
		printPlan(cmd.OutOrStdout(), p)
		return nil
	},
}

var planCompleteCmd = &cobra.Command{
	Use:   "complete <session-id>",
	Short: "Toggle a session's completion mark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		p, err := svc.ToggleCompletion(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		state := "not completed"
		if p.IsCompleted(args[0]) {
			state = "completed"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s marked %s (%d/%d sessions done)\n",
			args[0], state, p.CompletedCount(), p.SessionCount())
		return nil
	},
}

var planNoteCmd = &cobra.Command{
	Use:   "note [text]",
	Short: "Set the personal note (opens an editor when no text is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if len(args) == 0 {
			return runNoteEditor(svc)
		}
		if _, err := svc.SetNote(cmd.Context(), strings.Join(args, " ")); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Note saved.")
		return nil
	},
}

var planPaceCmd = &cobra.Command{
	Use:       "pace <balanced|intensive|foundations>",
	Short:     "Change the plan's pace",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"balanced", "intensive", "foundations"},
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		p, err := svc.SetPace(cmd.Context(), plan.Pace(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pace set to %s. %s\n", p.Pace, p.Pace.Description())
		return nil
	},
}

var planAutoCompleteCmd = &cobra.Command{
	Use:   "autocomplete <on|off>",
	Short: "Mark sessions complete automatically when an assessment passes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}

		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if _, err := svc.SetAutoComplete(cmd.Context(), on); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Auto-complete on pass: %s\n", onOff(on))
		return nil
	},
}

var planExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the plan as JSON or an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("output")

		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		var buf bytes.Buffer
		var name string
		switch strings.ToLower(format) {
		case "json":
			name, err = svc.Export(cmd.Context(), &buf)
		case "xlsx":
			name, err = svc.ExportWorkbook(cmd.Context(), &buf)
		default:
			return fmt.Errorf("invalid format %q: must be json or xlsx", format)
		}
		if err != nil {
			return err
		}

		if out == "-" {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		if out == "" {
			out = name
		} else if info, err := os.Stat(out); err == nil && info.IsDir() {
			out = filepath.Join(out, name)
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
		return nil
	},
}

var planImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace the current plan with an exported JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open plan file: %w", err)
			}
			defer f.Close()
			r = f
		}

		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		p, err := svc.Import(cmd.Context(), r)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%d sessions)\n", p.Title, p.SessionCount())
		return nil
	},
}

func init() {
	planGenerateCmd.Flags().StringSlice("topic", defaultTopics, "Topic IDs to include (repeat or comma-separate)")
	planGenerateCmd.Flags().Int("weeks", 6, "Number of weeks (1-12)")
	planGenerateCmd.Flags().Int("hours", 8, "Study hours per week (2-20)")
	planGenerateCmd.Flags().String("pace", string(plan.PaceBalanced), "Pace: balanced, intensive, or foundations")

	planExportCmd.Flags().String("format", "json", "Export format: json or xlsx")
	planExportCmd.Flags().StringP("output", "o", "", "Output file or directory (default: plan title in the current directory, - for stdout)")

	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planCompleteCmd)
	planCmd.AddCommand(planNoteCmd)
	planCmd.AddCommand(planPaceCmd)
	planCmd.AddCommand(planAutoCompleteCmd)
	planCmd.AddCommand(planExportCmd)
	planCmd.AddCommand(planImportCmd)
}

func printPlan(w io.Writer, p *plan.ExpertPlan) {
	fmt.Fprintln(w, p.Title)
	fmt.Fprintf(w, "Created %s  ·  %d weeks  ·  %d hrs/week  ·  %s pace  ·  %d/%d sessions done\n",
		p.CreatedAt, p.Weeks, p.HoursPerWeek, p.Pace, p.CompletedCount(), p.SessionCount())
	if p.PersonalNote != "" {
		fmt.Fprintf(w, "Note: %s\n", p.PersonalNote)
	}

	for _, wk := range p.WeeksData {
		fmt.Fprintf(w, "\nWeek %d: %s\n", wk.WeekNumber, wk.Theme)
		fmt.Fprintln(w, strings.Repeat("─", 100))
		for _, s := range wk.Sessions {
			mark := " "
			if p.IsCompleted(s.ID) {
				mark = "✓"
			}
			fmt.Fprintf(w, "[%s] %-28s  %-12s  %-36s  %4d min\n",
				mark, s.ID, s.TopicTitle, truncate(s.Focus.Title, 36), s.DurationMinutes)
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid value %q: use on or off", s)
	}
	return b, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
