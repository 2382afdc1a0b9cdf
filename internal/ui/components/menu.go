package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Pointer marks the highlighted row in menus and choice lists.
const Pointer = "▸ "

type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical list of actions. Movement wraps around at both ends.
type Menu struct {
	Items  []MenuItem
	cursor int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Cursor is the index of the highlighted item.
func (m Menu) Cursor() int { return m.cursor }

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}
	n := len(m.Items)
	switch key.String() {
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor + n - 1) % n
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % n
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = n - 1
	case "enter", "space":
		if act := m.Items[m.cursor].Action; act != nil {
			return m, act()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		if i == m.cursor {
			lines[i] = theme.Selected.Render(Pointer + item.Label)
		} else {
			lines[i] = theme.Unselected.Render("  " + item.Label)
		}
	}
	return strings.Join(lines, "\n")
}
