// Package layout draws the chrome around every screen: a bordered header,
// the content area and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Smallest terminal the TUI draws into.
const (
	MinWidth  = 80
	MinHeight = 24
)

// Heights of the bordered header and footer bars.
const (
	HeaderHeight = 3
	FooterHeight = 3
)

const compactBelow = 30

const AppName = "Study Buddy"

// KeyHint is one "key action" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactHeight reports whether screens should drop decorative rows.
func IsCompactHeight(height int) bool { return height < compactBelow }

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("The window is %d×%d.\nStudy Buddy needs at least %d×%d.\n\nResize the terminal to continue.",
		width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
}

// RenderHeader shows the app name on the left, the screen title centred
// and status (such as the question position) on the right.
func RenderHeader(title, status string, width int) string {
	inner := max(width-4, 0)
	third := inner / 3
	cell := func(w int, align lipgloss.Position) lipgloss.Style {
		return lipgloss.NewStyle().Width(w).MaxWidth(w).Align(align)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		cell(third, lipgloss.Left).Foreground(theme.Primary).Bold(true).Render(AppName),
		cell(inner-2*third, lipgloss.Center).Foreground(theme.Text).Render(title),
		cell(third, lipgloss.Right).Foreground(theme.Accent).Render(status),
	)
	return bar(width).Render(row)
}

// RenderFooter lists hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar(width).Render(strings.Join(parts, descStyle.Render("  ·  ")))
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content),
		footer,
	)
}

// Wrap breaks s on word boundaries to at most width cells per line.
func Wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
