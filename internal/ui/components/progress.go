package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Progress is a labelled bar showing Done out of Total.
type Progress struct {
	Label string
	Done  int
	Total int
	Width int
}

func (p Progress) View() string {
	label := ""
	if p.Label != "" {
		label = theme.Hint.Render(p.Label) + "  "
	}
	bar := max(p.Width-lipgloss.Width(label), 4)
	fill := 0
	if p.Total > 0 {
		fill = min(max(p.Done, 0)*bar/p.Total, bar)
	}
	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", fill)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", bar-fill))
}
