package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/expertmaker/internal/quiz"
	"github.com/abhisek/expertmaker/internal/router"
	"github.com/abhisek/expertmaker/internal/screen"
	"github.com/abhisek/expertmaker/internal/store"
	"github.com/abhisek/expertmaker/internal/ui/layout"
	"github.com/abhisek/expertmaker/internal/ui/theme"
)

// Loader returns every recorded attempt, oldest first.
type Loader interface {
	History(ctx context.Context) ([]store.TestRecord, error)
}

type historyLoadedMsg struct {
	Records []store.TestRecord
	Err     error
}

// HistoryScreen lists past quiz attempts, newest first, with their missed
// questions on demand.
type HistoryScreen struct {
	loader   Loader
	records  []store.TestRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(loader Loader) *HistoryScreen {
	return &HistoryScreen{
		loader:   loader,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.loader.History(context.Background())
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		newest := make([]store.TestRecord, len(records))
		for i, r := range records {
			newest[len(records)-1-i] = r
		}
		return historyLoadedMsg{Records: newest}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quiz attempts yet. Take a diagnostic to get started!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.records {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		mark := "✓"
		if !r.Passed {
			mark = "✗"
		}
		if r.Mode() == quiz.ModeDiagnostic {
			mark = "·"
		}

		line := fmt.Sprintf("%s%s  %-28s  %-10s  %3d%%  %s",
			prefix, timestampLabel(r.Timestamp), r.SessionID(), r.Mode(), r.Score, mark)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(layout.Center(style.Render(line), width))
		b.WriteString("\n")

		if s.expanded[i] {
			if len(r.Weaknesses) == 0 {
				b.WriteString(layout.Center(theme.Hint.Render("    Nothing missed"), width))
				b.WriteString("\n")
			}
			for _, w := range r.Weaknesses {
				b.WriteString(layout.Center(
					lipgloss.NewStyle().Foreground(theme.Error).Render("    ✗ "+w.Question), width))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// timestampLabel trims an ISO timestamp to "2006-01-02 15:04".
func timestampLabel(ts string) string {
	if len(ts) < 16 {
		return ts
	}
	return strings.Replace(ts[:16], "T", " ", 1)
}
