package summary

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/report"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Review renders a scored round as a scrollable list of review items.
type Review struct {
	Summary quiz.Summary
	Offset  int
}

// ScrollUp moves one item up.
func (r *Review) ScrollUp() {
	r.Offset = max(r.Offset-1, 0)
}

// ScrollDown moves one item down.
func (r *Review) ScrollDown() {
	r.Offset = min(r.Offset+1, max(len(r.Summary.Items)-1, 0))
}

// View renders the score header and as many items from Offset as fit in
// height.
func (r Review) View(width, height int) string {
	s := r.Summary
	inner := min(width-4, 100)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Practice Results"))
	b.WriteString("\n\n")

	info := fmt.Sprintf("Practice Mode: %s    Difficulty Level: %s",
		quiz.ModeLabel(s.Mode), quiz.DifficultyLabel(s.Difficulty))
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Render(info))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(scoreColor(s.Score)).
		Bold(true).
		Render("Score: " + s.ScoreLine()))
	b.WriteString("\n\n")

	used := lipgloss.Height(b.String())
	for i := r.Offset; i < len(s.Items); i++ {
		block := renderItem(s.Items[i], inner)
		if used+lipgloss.Height(block) > height && i > r.Offset {
			remaining := len(s.Items) - i
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Render(fmt.Sprintf("%d more below", remaining))))
			break
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
		b.WriteString("\n")
		used += lipgloss.Height(block) + 1
	}
	return b.String()
}

func renderItem(it quiz.ReviewItem, width int) string {
	result := theme.Incorrect.Render(it.ResultLabel())
	if it.Correct {
		result = theme.Correct.Render(it.ResultLabel())
	}
	label := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(layout.Wrap(it.Heading(), width)),
		label.Render("Your Answer: ") + it.UserAnswer,
		label.Render("Correct Answer: ") + it.CorrectAnswer,
		label.Render("Result: ") + result,
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func scoreColor(score int) color.Color {
	switch {
	case score >= 80:
		return theme.Success
	case score >= 50:
		return theme.Accent
	}
	return theme.Error
}

// Export writes s to dir in format f under the dated report file name and
// returns the written path.
func Export(dir string, f report.Format, s quiz.Summary, now time.Time) (string, error) {
	return report.SaveFile(dir, f, s, now)
}
