// Package summary shows a scored practice round and exports it as a report.
package summary

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/report"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// ExportedMsg reports the outcome of an export command.
type ExportedMsg struct {
	Path string
	Err  error
}

// ExportCmd writes s in format f to dir off the UI goroutine.
func ExportCmd(dir string, f report.Format, s quiz.Summary, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path, err := Export(dir, f, s, now)
		return ExportedMsg{Path: path, Err: err}
	}
}

// ExportKey maps the review export keys to a report format.
func ExportKey(key string) (report.Format, bool) {
	switch key {
	case "p":
		return report.FormatPDF, true
	case "x":
		return report.FormatXLSX, true
	case "s":
		return report.FormatText, true
	}
	return "", false
}

// ExportHints are the footer hints for the export keys.
var ExportHints = []layout.KeyHint{
	{Key: "P", Description: "PDF"},
	{Key: "X", Description: "Excel"},
	{Key: "S", Description: "Text"},
}

// StatusLine renders the outcome of the last export.
func StatusLine(msg ExportedMsg, width int) string {
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if msg.Err != nil {
		return style.Foreground(theme.Error).Render("Export failed: " + msg.Err.Error())
	}
	if msg.Path == "" {
		return ""
	}
	return style.Foreground(theme.Success).Render("Saved " + msg.Path)
}

// SummaryScreen shows a stored round.
type SummaryScreen struct {
	review    Review
	taken     time.Time
	exportDir string
	now       func() time.Time
	exported  ExportedMsg
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a round finished at taken. Exports are
// written to exportDir.
func New(s quiz.Summary, taken time.Time, exportDir string) *SummaryScreen {
	return &SummaryScreen{
		review:    Review{Summary: s},
		taken:     taken,
		exportDir: exportDir,
		now:       time.Now,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Round Review"
}

func (s *SummaryScreen) Status() string {
	if s.taken.IsZero() {
		return ""
	}
	return s.taken.Format("Jan 02, 2006 15:04") + "  "
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	hints = append(hints, ExportHints...)
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ExportedMsg:
		s.exported = msg
		return s, nil

	case tea.KeyPressMsg:
		key := msg.String()
		switch key {
		case "up", "k":
			s.review.ScrollUp()
			return s, nil
		case "down", "j":
			s.review.ScrollDown()
			return s, nil
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if f, ok := ExportKey(key); ok {
			return s, ExportCmd(s.exportDir, f, s.review.Summary, s.now())
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	status := StatusLine(s.exported, width)
	body := s.review.View(width, height-lipgloss.Height(status)-1)
	if status == "" {
		return body
	}
	return body + "\n" + status
}
