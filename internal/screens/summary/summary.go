// Package summary shows the outcome of a submitted quiz.
package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/expertmaker/internal/rank"
	"github.com/abhisek/expertmaker/internal/router"
	"github.com/abhisek/expertmaker/internal/screen"
	"github.com/abhisek/expertmaker/internal/studio"
	"github.com/abhisek/expertmaker/internal/ui/layout"
	"github.com/abhisek/expertmaker/internal/ui/theme"
)

// SummaryScreen displays a graded attempt.
type SummaryScreen struct {
	sub *studio.Submission
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(sub *studio.Submission) *SummaryScreen {
	return &SummaryScreen{sub: sub}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, router.Pop
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sub := s.sub
	if sub == nil {
		return ""
	}

	var b strings.Builder
	center := func(style lipgloss.Style, text string) {
		b.WriteString(layout.Center(style.Render(text), width))
		b.WriteString("\n")
	}

	headline, headColor := "Diagnostic captured", color.Color(theme.Secondary)
	if sub.Outcome != nil {
		headline, headColor = "Keep going!", theme.Accent
		if sub.Record.Passed {
			headline, headColor = "Assessment passed!", theme.Success
		}
	}
	center(lipgloss.NewStyle().Foreground(headColor).Bold(true), headline)
	b.WriteString("\n")

	center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Score: %d%%        Correct: %d/%d", sub.Result.Score, sub.Result.Correct, sub.Result.Total))
	center(theme.Hint, sub.Message)

	if out := sub.Outcome; out != nil {
		b.WriteString("\n")
		belt := rank.BeltName(out.State)
		line := fmt.Sprintf("■ %s belt · %d stripes · %d points", belt, out.State.Stripes, out.State.Points)
		center(lipgloss.NewStyle().Foreground(theme.BeltColor(belt)).Bold(true), line)
		if out.LeveledUp {
			center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), "Rank up!")
		}
	}
	if sub.Completed {
		center(lipgloss.NewStyle().Foreground(theme.Success), "✓ Session marked complete")
	}

	if len(sub.Result.Weaknesses) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString("\n")
	center(lipgloss.NewStyle().Foreground(theme.TextDim), "Review")
	b.WriteString(layout.Center(divider, width))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Width(min(80, width-8))
	for _, w := range sub.Result.Weaknesses {
		block := theme.Incorrect.Render("✗ "+w.Question) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Render("  "+w.Rationale) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Secondary).Render("  ↗ "+w.DocLink)
		b.WriteString(layout.Center(body.Render(block), width))
		b.WriteString("\n")
	}

	return b.String()
}
