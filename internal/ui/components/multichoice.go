package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/expertmaker/internal/quiz"
	"github.com/abhisek/expertmaker/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector for one quiz question. The
// correct answer is never shown; grading happens after the whole quiz.
type MultiChoice struct {
	Question quiz.Question
	Selected int
	// Chosen is the confirmed option, or -1.
	Chosen int
}

// NewMultiChoice creates a selector for q with nothing chosen.
func NewMultiChoice(q quiz.Question) MultiChoice {
	return MultiChoice{Question: q, Chosen: -1}
}

// Update handles arrows, option letters, and Enter to confirm.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Question.Options)-1 {
			m.Selected++
		}
	case "enter", "space":
		m.Chosen = m.Selected
	default:
		if len(key) == 1 {
			if i := optionIndex(key[0]); i >= 0 && i < len(m.Question.Options) {
				m.Selected = i
				m.Chosen = i
			}
		}
	}

	return m, nil
}

// Answered reports whether an option has been confirmed.
func (m MultiChoice) Answered() bool {
	return m.Chosen >= 0
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Question.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		marker := " "
		if i == m.Chosen {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %c)  %s", prefix, marker, optionLabel(i), opt)

		if i == m.Selected {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// IsConfirmKey reports whether key confirms an answer: Enter, Space, or a
// valid option letter or number.
func (m MultiChoice) IsConfirmKey(key string) bool {
	if key == "enter" || key == "space" {
		return true
	}
	if len(key) != 1 {
		return false
	}
	i := optionIndex(key[0])
	return i >= 0 && i < len(m.Question.Options)
}

func optionLabel(i int) rune {
	return rune('A' + i)
}

// optionIndex maps 'a'..'z' and '1'..'9' to an option index, or -1.
func optionIndex(c byte) int {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= '1' && c <= '9':
		return int(c - '1')
	}
	return -1
}
