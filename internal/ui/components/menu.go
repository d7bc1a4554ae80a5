package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/expertmaker/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label string
	// Detail is rendered dimmed after the label.
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// SetItems replaces the items, keeping the selection in range.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	m.Selected = max(0, min(m.Selected, len(items)-1))
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	detail := lipgloss.NewStyle().Foreground(theme.TextDim)
	for i, item := range m.Items {
		var line string
		switch {
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + item.Label)
		case item.Disabled:
			line = detail.Render("    " + item.Label)
		default:
			line = theme.Unselected.Render("    " + item.Label)
		}
		if item.Detail != "" {
			line += "  " + detail.Render(item.Detail)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
