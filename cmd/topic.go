package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/expertmaker/internal/catalog"
)

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Browse the topic catalog",
}

var topicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		topics := catalog.Default().Topics()

		// Header.
		fmt.Fprintf(w, "%-12s  %-24s  %6s  %9s  %s\n", "ID", "Title", "Focus", "Questions", "Description")
		fmt.Fprintln(w, strings.Repeat("─", 110))

		for _, t := range topics {
			fmt.Fprintf(w, "%-12s  %-24s  %6d  %9d  %s\n",
				t.ID, truncate(t.Title, 24), len(t.FocusAreas), len(t.QuizBank), truncate(t.Description, 56))
		}

		fmt.Fprintf(w, "\n%d topics\n", len(topics))
		return nil
	},
}

var topicShowCmd = &cobra.Command{
	Use:   "show <topic-id>",
	Short: "Show a topic's focus areas and study guides",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := catalog.Default().GetTopic(args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s (%s)\n%s\n", t.Title, t.ID, t.Description)
		for i, f := range t.FocusAreas {
			fmt.Fprintf(w, "\n%d. %s [%s]\n", i+1, f.Title, f.ID)
			fmt.Fprintf(w, "   %s\n", f.Summary)
			fmt.Fprintf(w, "   %s\n", f.StudyGuide.Overview)
			for _, o := range f.StudyGuide.Objectives {
				fmt.Fprintf(w, "   • %s\n", o)
			}
			for _, r := range f.Resources {
				fmt.Fprintf(w, "   ↗ %s  %s\n", r.Title, r.URL)
			}
			fmt.Fprintf(w, "   %d quiz questions\n", len(t.QuestionsFor(f.ID)))
		}
		return nil
	},
}

func init() {
	topicCmd.AddCommand(topicListCmd)
	topicCmd.AddCommand(topicShowCmd)
}
