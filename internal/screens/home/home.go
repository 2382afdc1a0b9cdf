package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/history"
	"github.com/abhisek/studybuddy/internal/screens/placeholder"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const bannerFull = ` ___ _             _        ___         _    _
/ __| |_ _  _  __| |_  _  | _ )_  _ __| |__| |_  _
\__ \  _| || |/ _' | || | | _ \ || / _' / _' | || |
|___/\__|\_,_|\__,_|\_, | |___/\_,_\__,_\__,_|\_, |
                    |__/                      |__/`

const bannerCompact = "S T U D Y   B U D D Y"

const tagline = "Turn your notes into practice questions"

// Options configures the home screen.
type Options struct {
	// NewPractice builds the practice screen pushed by "Start Practice".
	NewPractice func() screen.Screen

	// Results backs the history entry and the last-round line. Nil when
	// running without a database.
	Results store.ResultRepo

	ExportDir string
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts Options
	menu components.Menu
	last string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// lastResultMsg carries the most recent round for the header line.
type lastResultMsg struct {
	Line string
}

// New creates a HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}

	items := []components.MenuItem{
		{Label: "Start Practice", Action: func() tea.Cmd {
			if opts.NewPractice == nil {
				return push(placeholder.New("Practice", "No question generator is configured."))
			}
			return push(opts.NewPractice())
		}},
		{Label: "Results History", Action: func() tea.Cmd {
			if opts.Results == nil {
				return push(placeholder.New("Results History", "History is not kept in ephemeral mode."))
			}
			return push(history.New(opts.Results, opts.ExportDir))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	repo := h.opts.Results
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		rows, err := repo.List(context.Background(), store.QueryOpts{Limit: 1})
		if err != nil || len(rows) == 0 {
			return lastResultMsg{}
		}
		r := rows[0]
		return lastResultMsg{Line: fmt.Sprintf("Last round: %s, %s, %s",
			quiz.ModeLabel(r.Summary.Mode), quiz.DifficultyLabel(r.Summary.Difficulty), r.Summary.ScoreLine())}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lastResultMsg:
		h.last = msg.Line
		return h, nil
	case tea.KeyPressMsg:
		if msg.String() == "t" {
			return h, screen.ToggleTheme
		}
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || width < 70
	cw := min(max(width-6, 20), 60)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var sections []string
	banner := bannerFull
	if compact {
		banner = bannerCompact
	}
	sections = append(sections, center.Render(theme.Title.Render(banner)))
	sections = append(sections, center.Render(theme.Subtitle.Render(tagline)))
	if h.last != "" {
		sections = append(sections, center.Render(theme.Hint.Render(h.last)))
	}

	menu := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 4).
		Render(strings.TrimRight(h.menu.View(), "\n"))
	sections = append(sections, center.Render(menu))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "T", Description: "Theme"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
