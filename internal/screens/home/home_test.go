package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/history"
	"github.com/abhisek/studybuddy/internal/screens/placeholder"
	"github.com/abhisek/studybuddy/internal/store"
)

type oneResult struct{}

func (oneResult) Save(context.Context, store.Result) error { return nil }
func (oneResult) List(context.Context, store.QueryOpts) ([]store.Result, error) {
	qs := []quiz.Question{quiz.NewTrueFalse("True or False: Water boils at 100C at sea level.", true)}
	sum := quiz.Summarize(qs, []quiz.Answer{quiz.BoolAnswer(true)}, "true-false", quiz.Expert)
	return []store.Result{{ID: 1, Timestamp: time.Now(), Summary: sum}}, nil
}
func (oneResult) Get(context.Context, int) (*store.Result, error)         { return nil, nil }
func (oneResult) StatsByMode(context.Context) ([]store.ModeStats, error) { return nil, nil }

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	return msg.Screen
}

func TestHome_StartPractice(t *testing.T) {
	built := &placeholder.PlaceholderScreen{}
	h := New(Options{NewPractice: func() screen.Screen { return built }})
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if got := pushed(t, cmd); got != built {
		t.Errorf("pushed %T, want practice factory result", got)
	}
}

func TestHome_HistoryWithoutStore(t *testing.T) {
	h := New(Options{})
	h.Update(specialKey(tea.KeyDown))
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if _, ok := pushed(t, cmd).(*placeholder.PlaceholderScreen); !ok {
		t.Error("expected placeholder without a results store")
	}
}

func TestHome_HistoryAndLastRound(t *testing.T) {
	h := New(Options{Results: oneResult{}})
	h.Update(h.Init()())
	if !strings.Contains(h.View(100, 30), "Last round: True/False, Expert, 100% (1/1)") {
		t.Error("expected last round line")
	}

	h.Update(specialKey(tea.KeyDown))
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if _, ok := pushed(t, cmd).(*history.HistoryScreen); !ok {
		t.Error("expected history screen")
	}
}

func TestHome_QuitAndTheme(t *testing.T) {
	h := New(Options{})
	_, cmd := h.Update(tea.KeyPressMsg{Code: 't', Text: "t"})
	if cmd == nil {
		t.Fatal("expected theme command")
	}
	if _, ok := cmd().(screen.ToggleThemeMsg); !ok {
		t.Error("expected ToggleThemeMsg")
	}

	h.Update(specialKey(tea.KeyDown))
	h.Update(specialKey(tea.KeyDown))
	_, cmd = h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}
