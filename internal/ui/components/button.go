package components

import (
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Button is a one-line button. A disabled button renders dimmed and shows
// Busy instead of Label when set.
type Button struct {
	Label    string
	Busy     string
	Focused  bool
	Disabled bool
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Disabled && b.Busy != "" {
		label = b.Busy
	}
	if b.Focused && !b.Disabled {
		return theme.ButtonActive.Render(Pointer + label)
	}
	return theme.ButtonInactive.Render(label)
}
