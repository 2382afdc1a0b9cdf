package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/screens/summary"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *PracticeScreen) View(width, height int) string {
	if s.alert != "" {
		return renderDialog(width, height, "Something went wrong", s.alert, "Press Enter to continue")
	}
	switch s.sess.Phase {
	case session.PhaseAnswering:
		if s.sess.ConfirmPending {
			return renderDialog(width, height, "Finish practice?",
				fmt.Sprintf("You have %d unanswered question(s).\nUnanswered questions are marked incorrect.", s.sess.Unanswered()),
				"Y finish   N keep answering")
		}
		return s.renderQuestion(width)
	case session.PhaseReviewing:
		status := summary.StatusLine(s.exported, width)
		body := s.review.View(width, height-lipgloss.Height(status)-1)
		if status == "" {
			return body
		}
		return body + "\n" + status
	}
	return s.renderSetup(width)
}

func (s *PracticeScreen) renderSetup(width int) string {
	cfg := s.sess.Config
	formWidth := min(width-8, 72)

	var rows []string
	rows = append(rows, theme.Title.Width(formWidth).Render("Set up a practice round"), "")

	notes := "No notes loaded"
	if cfg.Notes != "" {
		notes = fmt.Sprintf("%s, %d characters", s.notesSource, len([]rune(cfg.Notes)))
	}
	rows = append(rows, theme.Hint.Render("Notes: "+notes), "")

	rows = append(rows,
		s.fieldRow(fieldFile, "Notes file", s.fileInput.View()),
		s.fieldRow(fieldPaste, "Paste notes", s.pasteInput.View()),
		s.fieldRow(fieldMode, "Practice mode", selector(quiz.ModeLabel(cfg.Mode), "Select a mode", s.focus == fieldMode)),
		s.fieldRow(fieldDifficulty, "Difficulty", selector(quiz.DifficultyLabel(cfg.Difficulty), "Select a level", s.focus == fieldDifficulty)),
		s.fieldRow(fieldCount, "Questions", s.countInput.View()),
		"",
	)

	busy := ""
	if s.busy {
		busy = spinnerFrames[s.spinner%len(spinnerFrames)] + " Working..."
		if s.sess.Phase == session.PhaseGenerating {
			busy = spinnerFrames[s.spinner%len(spinnerFrames)] + " Generating questions..."
		}
	}
	start := components.Button{
		Label:    "Start Practice",
		Busy:     busy,
		Focused:  s.focus == fieldStart,
		Disabled: s.busy || !cfg.Complete(),
	}
	rows = append(rows, start.View())

	if s.inlineErr != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(theme.Error).Width(formWidth).Render(s.inlineErr))
	}

	form := lipgloss.NewStyle().Width(formWidth).Render(strings.Join(rows, "\n"))
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, form)
}

func (s *PracticeScreen) fieldRow(f field, label, value string) string {
	labelStyle := lipgloss.NewStyle().Width(16).Foreground(theme.TextDim)
	prefix := "  "
	if s.focus == f {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
		prefix = components.Pointer
	}
	return labelStyle.Render(prefix+label) + value
}

// selector renders a left/right cycling value.
func selector(value, empty string, focused bool) string {
	if value == "" {
		value = theme.Hint.Render(empty)
	}
	if !focused {
		return "  " + value
	}
	arrow := lipgloss.NewStyle().Foreground(theme.Primary)
	return arrow.Render("◂ ") + value + arrow.Render(" ▸")
}

func (s *PracticeScreen) renderQuestion(width int) string {
	q, ok := s.sess.CurrentQuestion()
	if !ok {
		return ""
	}
	inner := min(width-8, 90)
	total := len(s.sess.Questions)
	answered := total - s.sess.Unanswered()

	var b strings.Builder
	b.WriteString("\n")
	bar := components.Progress{
		Label: fmt.Sprintf("Question %d of %d", s.sess.Current+1, total),
		Done:  answered,
		Total: total,
		Width: inner,
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Width(inner).Render(fmt.Sprintf("%s · %d of %d answered", quiz.ModeLabel(string(q.Type)), answered, total))))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(inner).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	var input string
	if s.textQuestion() {
		input = "Answer: " + s.textInput.View()
	} else {
		input = s.choice.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(inner).Render(input)))
	return b.String()
}

func renderDialog(width, height int, title, body, hint string) string {
	content := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(title) +
		"\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Render(layout.Wrap(body, min(width-16, 60))) +
		"\n\n" + theme.Hint.Render(hint)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.alert != "" {
		return []layout.KeyHint{{Key: "Enter", Description: "Dismiss"}}
	}
	switch s.sess.Phase {
	case session.PhaseAnswering:
		if s.sess.ConfirmPending {
			return []layout.KeyHint{
				{Key: "Y", Description: "Finish"},
				{Key: "N", Description: "Keep answering"},
			}
		}
		hints := []layout.KeyHint{{Key: "Tab", Description: "Next"}, {Key: "Shift+Tab", Description: "Previous"}}
		if s.textQuestion() {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "↑↓ Enter", Description: "Choose"})
		}
		return append(hints, layout.KeyHint{Key: "Ctrl+D", Description: "Finish"})
	case session.PhaseReviewing:
		hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
		hints = append(hints, summary.ExportHints...)
		hints = append(hints, layout.KeyHint{Key: "N", Description: "New practice"})
		if s.opts.Results != nil {
			hints = append(hints, layout.KeyHint{Key: "H", Description: "History"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Load / Start"},
		{Key: "Esc", Description: "Home"},
	}
}
