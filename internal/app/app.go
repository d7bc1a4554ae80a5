// Package app hosts the bubbletea program: the screen router, the header
// with the learner's rank, and the footer key hints.
package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/expertmaker/internal/quiz"
	"github.com/abhisek/expertmaker/internal/router"
	"github.com/abhisek/expertmaker/internal/screen"
	"github.com/abhisek/expertmaker/internal/screens/home"
	"github.com/abhisek/expertmaker/internal/screens/note"
	quizscreen "github.com/abhisek/expertmaker/internal/screens/quiz"
	"github.com/abhisek/expertmaker/internal/studio"
	"github.com/abhisek/expertmaker/internal/ui/layout"
)

// RankSource reports the learner's standing for the header.
type RankSource interface {
	Rank(ctx context.Context) (studio.RankStatus, error)
}

type rankLoadedMsg struct {
	Status studio.RankStatus
	Err    error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ranks  RankSource
	rank   *studio.RankStatus
	// quitAtRoot ends the program when the root screen asks to be popped,
	// for single-screen runs such as a direct quiz.
	quitAtRoot bool
	width      int
	height     int
}

func newAppModel(ranks RankSource, root screen.Screen, quitAtRoot bool) AppModel {
	return AppModel{
		router:     router.New(root),
		ranks:      ranks,
		quitAtRoot: quitAtRoot,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.loadRank, m.router.Active().Init())
}

func (m AppModel) loadRank() tea.Msg {
	st, err := m.ranks.Rank(context.Background())
	return rankLoadedMsg{Status: st, Err: err}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case rankLoadedMsg:
		if msg.Err != nil {
			slog.Warn("load rank for header", "error", msg.Err)
			return m, nil
		}
		m.rank = &msg.Status
		return m, nil

	case screen.DataChangedMsg:
		return m, tea.Batch(m.loadRank, m.router.Broadcast(msg))

	case router.PopScreenMsg:
		if m.router.Depth() <= 1 && m.quitAtRoot {
			return m, tea.Quit
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 || m.quitAtRoot {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	belt, progress := "", 0
	if m.rank != nil {
		belt, progress = m.rank.Belt, m.rank.Progress
	}
	header := layout.RenderHeader(title, belt, progress, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	if len(footerHints) == 0 {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
		if m.router.Depth() > 1 {
			footerHints = append(footerHints, layout.KeyHint{Key: "Esc", Description: "Back"})
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func run(m AppModel) error {
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// Run starts the full application on the plan dashboard.
func Run(svc *studio.Service) error {
	return run(newAppModel(svc, home.New(svc), false))
}

// RunQuiz starts a single quiz for sessionID and exits after its results.
func RunQuiz(svc *studio.Service, sessionID string, mode quiz.Mode) error {
	p, err := svc.Plan(context.Background())
	if err != nil {
		return err
	}
	s, _, ok := p.Session(sessionID)
	if !ok {
		return fmt.Errorf("%w: %s", studio.ErrSessionNotFound, sessionID)
	}
	return run(newAppModel(svc, quizscreen.New(svc, s, mode), true))
}

// RunNoteEditor opens the personal note editor and exits once it is saved.
func RunNoteEditor(svc *studio.Service) error {
	if _, err := svc.Plan(context.Background()); err != nil {
		return err
	}
	return run(newAppModel(svc, note.New(svc), true))
}
