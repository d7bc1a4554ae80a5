// Package quiz is the interactive quiz screen for one plan session.
package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/expertmaker/internal/plan"
	"github.com/abhisek/expertmaker/internal/quiz"
	"github.com/abhisek/expertmaker/internal/router"
	"github.com/abhisek/expertmaker/internal/screen"
	"github.com/abhisek/expertmaker/internal/screens/summary"
	"github.com/abhisek/expertmaker/internal/studio"
	"github.com/abhisek/expertmaker/internal/ui/components"
	"github.com/abhisek/expertmaker/internal/ui/layout"
	"github.com/abhisek/expertmaker/internal/ui/theme"
)

// Submitter records a finished attempt.
type Submitter interface {
	Submit(ctx context.Context, sessionID string, mode quiz.Mode, responses quiz.Responses) (*studio.Submission, error)
}

// submittedMsg carries the result of a submission.
type submittedMsg struct {
	Submission *studio.Submission
	Err        error
}

// QuizScreen walks through a session's questions and submits the answers.
type QuizScreen struct {
	submitter  Submitter
	session    plan.Session
	mode       quiz.Mode
	choices    []components.MultiChoice
	current    int
	submitting bool
	errMsg     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for s in the given mode.
func New(submitter Submitter, s plan.Session, mode quiz.Mode) *QuizScreen {
	choices := make([]components.MultiChoice, len(s.Quiz))
	for i, q := range s.Quiz {
		choices[i] = components.NewMultiChoice(q)
	}
	return &QuizScreen{
		submitter: submitter,
		session:   s,
		mode:      mode,
		choices:   choices,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	if s.mode == quiz.ModeDiagnostic {
		return "Diagnostic"
	}
	return "Assessment"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter/A-D", Description: "Answer"},
		{Key: "←", Description: "Previous"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		s.submitting = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		next := summary.New(msg.Submission)
		return s, tea.Batch(
			func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
			screen.DataChanged,
		)

	case tea.KeyMsg:
		if s.submitting || len(s.choices) == 0 {
			return s, nil
		}
		switch msg.String() {
		case "left", "h":
			if s.current > 0 {
				s.current--
			}
			return s, nil
		case "right", "l":
			if s.choices[s.current].Answered() && s.current < len(s.choices)-1 {
				s.current++
			}
			return s, nil
		}

		c, cmd := s.choices[s.current].Update(msg)
		s.choices[s.current] = c
		if !c.Answered() || !c.IsConfirmKey(msg.String()) {
			return s, cmd
		}
		return s, s.advance()
	}
	return s, nil
}

// advance moves to the next unanswered question, or submits once every
// question has an answer.
func (s *QuizScreen) advance() tea.Cmd {
	for i := 1; i <= len(s.choices); i++ {
		j := (s.current + i) % len(s.choices)
		if !s.choices[j].Answered() {
			s.current = j
			return nil
		}
	}
	return s.submit()
}

// Responses returns the confirmed answers so far.
func (s *QuizScreen) Responses() quiz.Responses {
	r := make(quiz.Responses, len(s.choices))
	for _, c := range s.choices {
		if c.Answered() {
			r[c.Question.ID] = c.Chosen
		}
	}
	return r
}

func (s *QuizScreen) submit() tea.Cmd {
	s.submitting = true
	s.errMsg = ""
	responses := s.Responses()
	sessionID, mode := s.session.ID, s.mode
	return func() tea.Msg {
		sub, err := s.submitter.Submit(context.Background(), sessionID, mode, responses)
		return submittedMsg{Submission: sub, Err: err}
	}
}

func (s *QuizScreen) View(width, height int) string {
	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s · %s", s.session.TopicTitle, s.session.Focus.Title))
	b.WriteString(info)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	if len(s.choices) == 0 {
		b.WriteString(layout.Center(theme.Hint.Render("This session has no quiz questions."), width))
		return b.String()
	}

	answered := 0
	for _, c := range s.choices {
		if c.Answered() {
			answered++
		}
	}
	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", s.current+1, len(s.choices)),
		answered*100/len(s.choices), false, min(60, width-8))
	b.WriteString(layout.Center(bar.View(), width))
	b.WriteString("\n\n")

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Width(min(90, width-4)).
		Render(s.choices[s.current].View())
	b.WriteString(layout.Center(card, width))
	b.WriteString("\n")

	switch {
	case s.submitting:
		b.WriteString(layout.Center(theme.Hint.Render("Grading..."), width))
	case s.errMsg != "":
		b.WriteString(layout.Center(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg), width))
	}
	return b.String()
}
