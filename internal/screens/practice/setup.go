package practice

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
)

func (s *PracticeScreen) handleSetupKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "tab", "down":
		return s.setFocus((s.focus + 1) % numFields)
	case "shift+tab", "up":
		return s.setFocus((s.focus + numFields - 1) % numFields)
	}

	switch s.focus {
	case fieldFile:
		if key == "enter" {
			if s.busy {
				return nil
			}
			path := strings.TrimSpace(s.fileInput.Value())
			if path == "" {
				s.inlineErr = "Please select a file first."
				return nil
			}
			s.busy = true
			s.inlineErr = ""
			return tea.Batch(s.loadNotes(path), spinnerTick())
		}
		var cmd tea.Cmd
		s.fileInput, cmd, _ = s.fileInput.Update(msg)
		return cmd

	case fieldPaste:
		if key == "enter" {
			return s.setFocus(fieldMode)
		}
		var cmd tea.Cmd
		var changed bool
		s.pasteInput, cmd, changed = s.pasteInput.Update(msg)
		if changed {
			s.setNotesFromPaste()
		}
		return cmd

	case fieldMode:
		if d, ok := cycleKey(key); ok {
			s.selectMode(cycle(quiz.Modes, s.sess.Config.Mode, d))
			return nil
		}
		if key == "enter" {
			return s.setFocus(fieldDifficulty)
		}

	case fieldDifficulty:
		if d, ok := cycleKey(key); ok {
			s.selectDifficulty(cycle(quiz.Difficulties, s.sess.Config.Difficulty, d))
			return nil
		}
		if key == "enter" {
			return s.setFocus(fieldCount)
		}

	case fieldCount:
		if key == "enter" {
			return s.setFocus(fieldStart)
		}
		var cmd tea.Cmd
		var changed bool
		s.countInput, cmd, changed = s.countInput.Update(msg)
		if changed {
			n, err := s.countInput.NumericValue()
			if err != nil {
				n = 0
			}
			if s.apply(session.SetCount{Count: n}) == nil {
				s.saveConfig()
			}
		}
		return cmd

	case fieldStart:
		if key == "enter" || key == "space" {
			return s.startGeneration()
		}
	}

	if key == "t" {
		return screen.ToggleTheme
	}
	return nil
}

// setNotesFromPaste uses the pasted text as notes. Clearing the field keeps
// notes loaded from a file.
func (s *PracticeScreen) setNotesFromPaste() {
	text := strings.TrimSpace(s.pasteInput.Value())
	if text == "" {
		return
	}
	if s.apply(session.SetNotes{Text: text}) == nil {
		s.notesSource = "pasted notes"
		s.inlineErr = ""
		s.saveConfig()
	}
}

func (s *PracticeScreen) selectMode(mode string) {
	if s.apply(session.SelectMode{Mode: mode}) == nil {
		s.saveConfig()
	}
}

func (s *PracticeScreen) selectDifficulty(level string) {
	if s.apply(session.SelectDifficulty{Difficulty: level}) == nil {
		s.saveConfig()
	}
}

// cycleKey maps left/right style keys to a step.
func cycleKey(key string) (int, bool) {
	switch key {
	case "right", "l", "space":
		return 1, true
	case "left", "h":
		return -1, true
	}
	return 0, false
}

// cycle steps through options from current. An unset current starts at the
// first option going forward and the last going back.
func cycle(options []string, current string, step int) string {
	i := slices.Index(options, current)
	if i < 0 {
		if step > 0 {
			return options[0]
		}
		return options[len(options)-1]
	}
	return options[(i+step+len(options))%len(options)]
}

// setFocus moves focus to f and returns the blink command of a focused
// input.
func (s *PracticeScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	return s.applyFocus()
}

func (s *PracticeScreen) applyFocus() tea.Cmd {
	s.fileInput.Blur()
	s.pasteInput.Blur()
	s.countInput.Blur()
	if s.sess.Phase != session.PhaseConfiguring {
		return nil
	}
	switch s.focus {
	case fieldFile:
		return s.fileInput.Focus()
	case fieldPaste:
		return s.pasteInput.Focus()
	case fieldCount:
		return s.countInput.Focus()
	}
	return nil
}
