// Package screen defines what the router stacks and the app frames.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/ui/layout"
)

// Screen is one page of the TUI. View draws only the content area; the
// app adds the header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider fills the right side of the header.
type StatusProvider interface {
	Status() string
}

// EscapeHandler screens receive Esc instead of being popped while
// CapturesEscape is true, e.g. to close an open dialog first.
type EscapeHandler interface {
	CapturesEscape() bool
}

// ToggleThemeMsg flips between the dark and light palettes.
type ToggleThemeMsg struct{}

// ToggleTheme is a tea.Cmd producing ToggleThemeMsg.
func ToggleTheme() tea.Msg { return ToggleThemeMsg{} }
