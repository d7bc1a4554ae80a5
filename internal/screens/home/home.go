// Package home is the plan dashboard: rank, schedule, and entry points to
// quizzes, notes, and history.
package home

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/expertmaker/internal/lesson"
	"github.com/abhisek/expertmaker/internal/plan"
	"github.com/abhisek/expertmaker/internal/quiz"
	"github.com/abhisek/expertmaker/internal/router"
	"github.com/abhisek/expertmaker/internal/screen"
	"github.com/abhisek/expertmaker/internal/screens/history"
	"github.com/abhisek/expertmaker/internal/screens/note"
	quizscreen "github.com/abhisek/expertmaker/internal/screens/quiz"
	"github.com/abhisek/expertmaker/internal/store"
	"github.com/abhisek/expertmaker/internal/studio"
	"github.com/abhisek/expertmaker/internal/ui/components"
	"github.com/abhisek/expertmaker/internal/ui/layout"
	"github.com/abhisek/expertmaker/internal/ui/theme"
)

// Service is what the dashboard and the screens it opens need.
type Service interface {
	quizscreen.Submitter
	note.Store
	history.Loader
	Rank(ctx context.Context) (studio.RankStatus, error)
	LatestScores(ctx context.Context, mode quiz.Mode) (map[string]store.TestRecord, error)
	ToggleCompletion(ctx context.Context, sessionID string) (*plan.ExpertPlan, error)
}

type loadedMsg struct {
	Plan   *plan.ExpertPlan
	Status studio.RankStatus
	Scores map[string]store.TestRecord
	Err    error
}

// HomeScreen is the main screen of the application.
type HomeScreen struct {
	svc      Service
	plan     *plan.ExpertPlan
	status   studio.RankStatus
	scores   map[string]store.TestRecord
	sessions []plan.Session
	menu     components.Menu
	loaded   bool
	noPlan   bool
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc Service) *HomeScreen {
	return &HomeScreen{svc: svc}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load
}

func (h *HomeScreen) load() tea.Msg {
	ctx := context.Background()
	status, err := h.svc.Rank(ctx)
	if err != nil {
		return loadedMsg{Err: err}
	}
	p, err := h.svc.Plan(ctx)
	if err != nil {
		return loadedMsg{Status: status, Err: err}
	}
	scores, err := h.svc.LatestScores(ctx, quiz.ModeAssessment)
	if err != nil {
		return loadedMsg{Err: err}
	}
	return loadedMsg{Plan: p, Status: status, Scores: scores}
}

func (h *HomeScreen) Title() string {
	return "Study Plan"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.plan == nil {
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Assessment"},
		{Key: "D", Description: "Diagnostic"},
		{Key: "C", Description: "Toggle done"},
		{Key: "N", Description: "Note"},
		{Key: "H", Description: "History"},
		{Key: "Q", Description: "Quit"},
	}
}

// Selected returns the highlighted session.
func (h *HomeScreen) Selected() (plan.Session, bool) {
	if len(h.sessions) == 0 {
		return plan.Session{}, false
	}
	return h.sessions[h.menu.Selected], true
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		h.apply(msg)
		return h, nil

	case screen.DataChangedMsg:
		return h, h.load

	case tea.KeyMsg:
		if h.plan == nil {
			if msg.String() == "q" {
				return h, tea.Quit
			}
			return h, nil
		}
		switch msg.String() {
		case "q":
			return h, tea.Quit
		case "d":
			if s, ok := h.Selected(); ok {
				return h, router.Push(quizscreen.New(h.svc, s, quiz.ModeDiagnostic))
			}
		case "c":
			if s, ok := h.Selected(); ok {
				return h, h.toggle(s.ID)
			}
		case "n":
			return h, router.Push(note.New(h.svc))
		case "h":
			return h, router.Push(history.New(h.svc))
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) apply(msg loadedMsg) {
	h.loaded = true
	h.status = msg.Status
	h.errMsg = ""
	h.noPlan = false
	if msg.Err != nil {
		h.plan = nil
		h.sessions = nil
		if errors.Is(msg.Err, studio.ErrNoPlan) {
			h.noPlan = true
		} else {
			h.errMsg = msg.Err.Error()
		}
		return
	}

	h.plan = msg.Plan
	h.scores = msg.Scores
	h.sessions = msg.Plan.Sessions()

	items := make([]components.MenuItem, 0, len(h.sessions))
	weekOf := make(map[string]int)
	for _, w := range msg.Plan.WeeksData {
		for _, s := range w.Sessions {
			weekOf[s.ID] = w.WeekNumber
		}
	}
	for _, s := range h.sessions {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s W%-2d %s · %s", h.mark(s.ID), weekOf[s.ID], s.TopicTitle, s.Focus.Title),
			Detail: h.detail(s),
			Action: func() tea.Cmd {
				return router.Push(quizscreen.New(h.svc, s, quiz.ModeAssessment))
			},
		})
	}
	h.menu.SetItems(items)
}

func (h *HomeScreen) mark(sessionID string) string {
	if h.plan.IsCompleted(sessionID) {
		return "✓"
	}
	return "○"
}

func (h *HomeScreen) detail(s plan.Session) string {
	d := lesson.FormatMinutes(s.DurationMinutes)
	if r, ok := h.scores[s.ID]; ok {
		d += fmt.Sprintf(" · last %d%%", r.Score)
	}
	return d
}

func (h *HomeScreen) toggle(sessionID string) tea.Cmd {
	return func() tea.Msg {
		if _, err := h.svc.ToggleCompletion(context.Background(), sessionID); err != nil {
			return loadedMsg{Err: err}
		}
		return screen.DataChangedMsg{}
	}
}

func (h *HomeScreen) View(width, height int) string {
	switch {
	case !h.loaded:
		return layout.Center(theme.Hint.Render("\n\nLoading plan..."), width)
	case h.errMsg != "":
		return layout.Center(lipgloss.NewStyle().Foreground(theme.Error).Render("\n\nError: "+h.errMsg), width)
	case h.noPlan:
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.Text).
			Render("No plan yet.\n\nRun `expertmaker plan generate` to build one.")
	}

	p := h.plan
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Title.Render(p.Title), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Subtitle.Render(fmt.Sprintf(
		"%d weeks · %d hrs/week · %s pace · %d/%d sessions done",
		p.Weeks, p.HoursPerWeek, p.Pace, p.CompletedCount(), p.SessionCount())), width))
	b.WriteString("\n\n")

	bar := components.NewProgressBar(
		fmt.Sprintf("%s belt · %d/%d stripes", h.status.Belt, h.status.State.Stripes, h.status.Config.StripesPerBelt),
		h.status.Progress, true, min(70, width-8))
	b.WriteString(layout.Center(bar.View(), width))
	b.WriteString("\n\n")

	if p.PersonalNote != "" {
		b.WriteString(layout.Center(theme.Hint.Render("Note: "+p.PersonalNote), width))
		b.WriteString("\n\n")
	}

	// Keep the highlighted session visible when the list is taller than the
	// remaining space.
	lines := strings.Split(strings.TrimRight(h.menu.View(), "\n"), "\n")
	room := max(3, height-strings.Count(b.String(), "\n")-4)
	start := 0
	if len(lines) > room {
		start = max(0, min(h.menu.Selected-room/2, len(lines)-room))
		lines = lines[start : start+room]
	}
	menu := lipgloss.NewStyle().Width(min(100, width-4)).Render(strings.Join(lines, "\n"))
	b.WriteString(layout.Center(menu, width))
	b.WriteString("\n")

	if s, ok := h.Selected(); ok {
		b.WriteString("\n")
		summary := lipgloss.NewStyle().Width(min(100, width-8)).Foreground(theme.TextDim).Render(s.Summary)
		b.WriteString(layout.Center(summary, width))
	}
	return b.String()
}
