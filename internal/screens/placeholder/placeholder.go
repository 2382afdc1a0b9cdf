// Package placeholder stands in for a menu entry that cannot run in the
// current configuration.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

type PlaceholderScreen struct {
	title, message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd                         { return nil }
func (p *PlaceholderScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (p *PlaceholderScreen) Title() string                         { return p.title }

func (p *PlaceholderScreen) View(width, height int) string {
	body := theme.Subtitle.Render("╌╌ Unavailable ╌╌") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(p.message) + "\n" +
		theme.Hint.Render("Press Esc to go back.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(body))
}
