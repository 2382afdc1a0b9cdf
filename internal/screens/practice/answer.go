package practice

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
)

var trueFalseOptions = []string{"True", "False"}

// textQuestion reports whether the current question takes typed input.
func (s *PracticeScreen) textQuestion() bool {
	q, ok := s.sess.CurrentQuestion()
	return ok && (q.Type == quiz.FillBlank || q.Type == quiz.ShortAnswer)
}

// syncAnswerWidgets rebuilds the input for the question at the cursor from
// its stored answer.
func (s *PracticeScreen) syncAnswerWidgets() tea.Cmd {
	q, ok := s.sess.CurrentQuestion()
	if !ok {
		return nil
	}
	a := s.sess.CurrentAnswer()

	switch q.Type {
	case quiz.MultipleChoice:
		chosen := -1
		if i, ok := a.Choice(); ok {
			chosen = i
		}
		s.choice = components.NewChoice(q.Options, chosen, true)
	case quiz.TrueFalse:
		chosen := -1
		if b, ok := a.Bool(); ok {
			chosen = 1
			if b {
				chosen = 0
			}
		}
		s.choice = components.NewChoice(trueFalseOptions, chosen, false)
	default:
		placeholder := "Type your answer..."
		if q.Type == quiz.ShortAnswer {
			placeholder = "Answer in a few words..."
		}
		s.textInput = components.NewTextInput(placeholder, false, 0)
		if text, ok := a.Text(); ok {
			s.textInput.SetValue(text)
		}
		return s.textInput.Focus()
	}
	return nil
}

func (s *PracticeScreen) handleAnswerKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if s.sess.ConfirmPending {
		switch key {
		case "y", "enter":
			if s.apply(session.ConfirmFinish{}) == nil {
				return s.enterReview()
			}
		case "n", "esc":
			s.apply(session.CancelFinish{})
		}
		return nil
	}

	switch key {
	case "tab":
		return s.move(session.NextQuestion{})
	case "shift+tab":
		return s.move(session.PreviousQuestion{})
	case "ctrl+d", "esc":
		return s.finish()
	}

	if s.textQuestion() {
		if key == "enter" {
			return s.move(session.NextQuestion{})
		}
		var cmd tea.Cmd
		var changed bool
		s.textInput, cmd, changed = s.textInput.Update(msg)
		if changed {
			if v := s.textInput.Value(); v == "" {
				s.apply(session.ClearAnswer{})
			} else {
				s.apply(session.EnterText{Text: v})
			}
		}
		return cmd
	}

	switch key {
	case "right":
		return s.move(session.NextQuestion{})
	case "left":
		return s.move(session.PreviousQuestion{})
	case "f":
		return s.finish()
	case "backspace", "delete":
		s.apply(session.ClearAnswer{})
		s.choice.Chosen = -1
		return nil
	}

	var changed bool
	s.choice, changed = s.choice.Update(msg)
	if changed {
		q, _ := s.sess.CurrentQuestion()
		if q.Type == quiz.TrueFalse {
			s.apply(session.SetTrueFalse{Value: s.choice.Chosen == 0})
		} else {
			s.apply(session.SelectOption{Index: s.choice.Chosen})
		}
		return nil
	}

	if key == "t" {
		return screen.ToggleTheme
	}
	return nil
}

func (s *PracticeScreen) move(c session.Command) tea.Cmd {
	before := s.sess.Current
	if s.apply(c) != nil || s.sess.Current == before {
		return nil
	}
	return s.syncAnswerWidgets()
}

// finish ends the round or opens the confirmation gate.
func (s *PracticeScreen) finish() tea.Cmd {
	if s.apply(session.Finish{}) != nil {
		return nil
	}
	if s.sess.Phase == session.PhaseReviewing {
		return s.enterReview()
	}
	return nil
}
