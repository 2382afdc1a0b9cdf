package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Choice is a single-select option list. Cursor is the highlighted row and
// Chosen the committed selection, or -1.
type Choice struct {
	Options []string
	Cursor  int
	Chosen  int
	Letters bool
}

// NewChoice creates a choice list. The cursor starts on chosen when it is a
// valid index.
func NewChoice(options []string, chosen int, letters bool) Choice {
	c := Choice{Options: options, Chosen: -1, Letters: letters}
	if chosen >= 0 && chosen < len(options) {
		c.Chosen = chosen
		c.Cursor = chosen
	}
	return c
}

// Update moves the cursor and commits a selection. It reports whether
// Chosen changed.
func (c Choice) Update(msg tea.Msg) (Choice, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Options) == 0 {
		return c, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		c.Cursor = max(c.Cursor-1, 0)
		return c, false
	case "down", "j":
		c.Cursor = min(c.Cursor+1, len(c.Options)-1)
		return c, false
	case "enter", "space":
		return c.choose(c.Cursor)
	}

	if i, ok := c.shortcut(key); ok {
		c.Cursor = i
		return c.choose(i)
	}
	return c, false
}

// shortcut maps "1".."9" and, for lettered lists, "a".."z" to an index.
func (c Choice) shortcut(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	r := key[0]
	i := -1
	switch {
	case r >= '1' && r <= '9':
		i = int(r - '1')
	case c.Letters && r >= 'a' && r <= 'z':
		i = int(r - 'a')
	}
	return i, i >= 0 && i < len(c.Options)
}

func (c Choice) choose(i int) (Choice, bool) {
	if c.Chosen == i {
		return c, false
	}
	c.Chosen = i
	return c, true
}

// View renders the list. The committed option is marked with a filled dot.
func (c Choice) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = Pointer
		}
		mark := "○"
		if i == c.Chosen {
			mark = "●"
		}
		label := ""
		if c.Letters {
			label = fmt.Sprintf("%c) ", 'A'+i)
		}
		line := fmt.Sprintf("%s%s %s%s", prefix, mark, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == c.Cursor:
			style = theme.Selected
		case i == c.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
