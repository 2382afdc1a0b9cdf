package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

type picked string

func key(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func TestMenuWrapsAndSelects(t *testing.T) {
	item := func(label string) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd {
			return func() tea.Msg { return picked(label) }
		}}
	}
	m := NewMenu([]MenuItem{item("Start Practice"), item("Results History"), item("Quit")})

	m, _ = m.Update(key(tea.KeyUp))
	if m.Cursor() != 2 {
		t.Fatalf("up from top: cursor = %d, want 2", m.Cursor())
	}
	m, _ = m.Update(key(tea.KeyDown))
	if m.Cursor() != 0 {
		t.Fatalf("down from bottom: cursor = %d, want 0", m.Cursor())
	}
	m, _ = m.Update(key(tea.KeyDown))
	_, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected action command")
	}
	if got := cmd(); got != picked("Results History") {
		t.Errorf("picked %v", got)
	}

	if !strings.Contains(m.View(), Pointer+"Results History") {
		t.Errorf("view does not mark the cursor:\n%s", m.View())
	}
}

func TestMenuEmpty(t *testing.T) {
	m := NewMenu(nil)
	if _, cmd := m.Update(key(tea.KeyEnter)); cmd != nil {
		t.Error("empty menu must not act")
	}
}

func TestProgressWidth(t *testing.T) {
	for _, p := range []Progress{
		{Label: "Question 1 of 4", Done: 1, Total: 4, Width: 40},
		{Done: 9, Total: 4, Width: 20},
		{Total: 0, Width: 10},
	} {
		if got := lipgloss.Width(p.View()); got != p.Width {
			t.Errorf("%+v: width = %d, want %d", p, got, p.Width)
		}
	}
}
