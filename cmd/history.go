package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/expertmaker/internal/quiz"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		modeVal, _ := cmd.Flags().GetString("mode")

		var mode quiz.Mode
		if modeVal != "" {
			m, err := quiz.ParseMode(modeVal)
			if err != nil {
				return err
			}
			mode = m
		}

		svc, closeFn, err := openService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		records, err := svc.History(cmd.Context())
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if mode != "" {
			filtered := records[:0]
			for _, r := range records {
				if r.Mode() == mode {
					filtered = append(filtered, r)
				}
			}
			records = filtered
		}
		if limit > 0 && len(records) > limit {
			records = records[len(records)-limit:]
		}

		w := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(w, "No quiz attempts yet.")
			return nil
		}

		// Header.
		fmt.Fprintf(w, "%-24s  %-28s  %-10s  %5s  %-4s  %s\n",
			"Timestamp", "Session", "Mode", "Score", "Pass", "Missed")
		fmt.Fprintln(w, strings.Repeat("─", 90))

		for _, r := range records {
			ok := "✓"
			if !r.Passed {
				ok = "✗"
			}
			fmt.Fprintf(w, "%-24s  %-28s  %-10s  %4d%%  %-4s  %d\n",
				r.Timestamp, r.SessionID(), r.Mode(), r.Score, ok, len(r.Weaknesses))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Show at most this many recent attempts (0 for all)")
	historyCmd.Flags().String("mode", "", "Filter by mode: diagnostic or assessment")
}
