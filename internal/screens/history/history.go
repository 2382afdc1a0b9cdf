package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/summary"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// listLimit caps how many rounds the screen loads.
const listLimit = 50

type historyLoadedMsg struct {
	Results []store.Result
	Stats   []store.ModeStats
	Err     error
}

// HistoryScreen lists finished practice rounds, newest first.
type HistoryScreen struct {
	results   store.ResultRepo
	exportDir string
	rows      []store.Result
	stats     []store.ModeStats
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. Opened rounds export to exportDir.
func New(results store.ResultRepo, exportDir string) *HistoryScreen {
	return &HistoryScreen{results: results, exportDir: exportDir}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.results
	return func() tea.Msg {
		ctx := context.Background()

		rows, err := repo.List(ctx, store.QueryOpts{Limit: listLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		// Stats are optional; the list is still useful without them.
		stats, _ := repo.StatsByMode(ctx)
		return historyLoadedMsg{Results: rows, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "Results History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Review"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rows = msg.Results
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.selected = max(s.selected-1, 0)
		case "down", "j":
			s.selected = max(min(s.selected+1, len(s.rows)-1), 0)
		case "enter":
			if s.selected < len(s.rows) {
				r := s.rows[s.selected]
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: summary.New(r.Summary, r.Timestamp, s.exportDir)}
				}
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.rows) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No rounds yet. Finish a practice round to see it here.")
	}

	var b strings.Builder
	b.WriteString("\n")
	if line := statsLine(s.stats); line != "" {
		b.WriteString(center.Foreground(theme.Secondary).Render(line))
		b.WriteString("\n\n")
	}

	// Keep the selected row visible.
	visible := max(height-lipgloss.Height(b.String())-1, 1)
	start := max(s.selected-visible+1, 0)
	end := min(start+visible, len(s.rows))

	for i := start; i < end; i++ {
		r := s.rows[i]
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %-18s %-13s %s",
			prefix,
			r.Timestamp.Format("Jan 02, 2006 15:04"),
			quiz.ModeLabel(r.Summary.Mode),
			quiz.DifficultyLabel(r.Summary.Difficulty),
			r.Summary.ScoreLine())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

// statsLine summarizes average scores per mode.
func statsLine(stats []store.ModeStats) string {
	parts := make([]string, 0, len(stats))
	for _, st := range stats {
		parts = append(parts, fmt.Sprintf("%s %.0f%% avg (%d)", quiz.ModeLabel(st.Mode), st.AvgScore, st.Rounds))
	}
	return strings.Join(parts, "   ")
}
