// Package note edits the plan's personal note.
package note

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/expertmaker/internal/plan"
	"github.com/abhisek/expertmaker/internal/router"
	"github.com/abhisek/expertmaker/internal/screen"
	"github.com/abhisek/expertmaker/internal/ui/components"
	"github.com/abhisek/expertmaker/internal/ui/layout"
	"github.com/abhisek/expertmaker/internal/ui/theme"
)

const maxNoteLen = 500

// Store reads and writes the note.
type Store interface {
	Plan(ctx context.Context) (*plan.ExpertPlan, error)
	SetNote(ctx context.Context, note string) (*plan.ExpertPlan, error)
}

type loadedMsg struct {
	Note string
	Err  error
}

type savedMsg struct {
	Err error
}

// NoteScreen is a single-line editor for the personal note.
type NoteScreen struct {
	store  Store
	input  components.TextInput
	loaded bool
	// broken is set when the note could not be loaded; saving is disabled.
	broken bool
	saving bool
	errMsg string
}

var _ screen.Screen = (*NoteScreen)(nil)
var _ screen.KeyHintProvider = (*NoteScreen)(nil)

// New creates a NoteScreen backed by st.
func New(st Store) *NoteScreen {
	return &NoteScreen{
		store: st,
		input: components.NewTextInput("What do you want to remember about this plan?", "", maxNoteLen),
	}
}

func (s *NoteScreen) Init() tea.Cmd {
	return func() tea.Msg {
		p, err := s.store.Plan(context.Background())
		if err != nil {
			return loadedMsg{Err: err}
		}
		return loadedMsg{Note: p.PersonalNote}
	}
}

func (s *NoteScreen) Title() string {
	return "Personal Note"
}

func (s *NoteScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// Value returns the text currently in the editor.
func (s *NoteScreen) Value() string {
	return s.input.Value()
}

func (s *NoteScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.broken = true
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.input.Model.SetValue(msg.Note)
		s.input.Model.CursorEnd()
		return s, s.input.Init()

	case savedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.input.Submit(false)
			return s, nil
		}
		s.input.Submit(true)
		return s, tea.Batch(screen.DataChanged, router.Pop)

	case tea.KeyMsg:
		if !s.loaded || s.broken || s.saving {
			return s, nil
		}
		if msg.String() == "enter" {
			return s, s.save()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *NoteScreen) save() tea.Cmd {
	s.saving = true
	s.errMsg = ""
	text := strings.TrimSpace(s.input.Value())
	return func() tea.Msg {
		_, err := s.store.SetNote(context.Background(), text)
		return savedMsg{Err: err}
	}
}

func (s *NoteScreen) View(width, height int) string {
	if !s.loaded {
		return layout.Center(theme.Hint.Render("\n\nLoading note..."), width)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Subtitle.Render("Capture reminders, goals, or blockers for this plan."), width))
	b.WriteString("\n\n")

	s.input.SetWidth(min(70, width-12))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1).
		Render(s.input.View())
	b.WriteString(layout.Center(box, width))
	b.WriteString("\n")

	switch {
	case s.saving:
		b.WriteString(layout.Center(theme.Hint.Render("Saving..."), width))
	case s.errMsg != "":
		b.WriteString(layout.Center(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg), width))
	}
	return b.String()
}
