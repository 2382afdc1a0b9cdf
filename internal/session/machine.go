package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/studybuddy/internal/quiz"
)

var (
	// ErrInvalidTransition is returned for a command the current phase
	// does not accept.
	ErrInvalidTransition = errors.New("command not allowed in current phase")

	// ErrIncompleteConfig is returned by StartGeneration when notes, mode,
	// difficulty or count is missing or invalid.
	ErrIncompleteConfig = errors.New("select notes, practice mode, difficulty and question count first")

	// ErrConfirmationPending is returned for anything but ConfirmFinish or
	// CancelFinish while the finish gate is open.
	ErrConfirmationPending = errors.New("finish confirmation pending")

	// ErrNoQuestions marks a generation result with an empty question list.
	ErrNoQuestions = errors.New("no questions were generated")
)

// Apply runs one command against s and returns the resulting session. On
// error the returned session equals s.
func Apply(s Session, c Command) (Session, error) {
	if s.ConfirmPending {
		switch c.(type) {
		case ConfirmFinish:
			s.ConfirmPending = false
			s.Phase = PhaseReviewing
			return s, nil
		case CancelFinish:
			s.ConfirmPending = false
			return s, nil
		}
		return s, ErrConfirmationPending
	}

	switch s.Phase {
	case PhaseConfiguring:
		return configure(s, c)
	case PhaseGenerating:
		return generate(s, c)
	case PhaseAnswering:
		return answer(s, c)
	case PhaseReviewing:
		if _, ok := c.(NewPractice); ok {
			return Session{Phase: PhaseConfiguring, Config: s.Config}, nil
		}
	}
	return s, invalid(s, c)
}

// Replay applies cmds in order, stopping at the first error.
func Replay(s Session, cmds ...Command) (Session, error) {
	for _, c := range cmds {
		next, err := Apply(s, c)
		if err != nil {
			return s, err
		}
		s = next
	}
	return s, nil
}

func configure(s Session, c Command) (Session, error) {
	switch c := c.(type) {
	case SetNotes:
		s.Config.Notes = c.Text
	case SelectMode:
		s.Config.Mode = c.Mode
	case SelectDifficulty:
		s.Config.Difficulty = c.Difficulty
	case SetCount:
		s.Config.Count = c.Count
	case StartGeneration:
		if !s.Config.Complete() {
			return s, ErrIncompleteConfig
		}
		s.Phase = PhaseGenerating
		s.Err = nil
	default:
		return s, invalid(s, c)
	}
	return s, nil
}

func generate(s Session, c Command) (Session, error) {
	switch c := c.(type) {
	case GenerationSucceeded:
		if len(c.Questions) == 0 {
			return failGeneration(s, ErrNoQuestions), nil
		}
		s.ID = newID()
		s.Phase = PhaseAnswering
		s.Questions = slices.Clone(c.Questions)
		s.Answers = quiz.NewAnswers(len(c.Questions))
		s.Current = 0
		return s, nil
	case GenerationFailed:
		err := c.Err
		if err == nil {
			err = ErrNoQuestions
		}
		return failGeneration(s, err), nil
	}
	return s, invalid(s, c)
}

func failGeneration(s Session, err error) Session {
	s.Phase = PhaseConfiguring
	s.Err = err
	s.Questions = nil
	s.Answers = nil
	s.Current = 0
	return s
}

func answer(s Session, c Command) (Session, error) {
	switch c := c.(type) {
	case SelectOption:
		return setAnswer(s, quiz.ChoiceAnswer(c.Index)), nil
	case SetTrueFalse:
		return setAnswer(s, quiz.BoolAnswer(c.Value)), nil
	case EnterText:
		return setAnswer(s, quiz.TextAnswer(c.Text)), nil
	case ClearAnswer:
		return setAnswer(s, quiz.NoAnswer()), nil
	case NextQuestion:
		if s.Current < len(s.Questions)-1 {
			s.Current++
		}
		return s, nil
	case PreviousQuestion:
		if s.Current > 0 {
			s.Current--
		}
		return s, nil
	case Finish:
		if s.Unanswered() > 0 {
			s.ConfirmPending = true
			return s, nil
		}
		s.Phase = PhaseReviewing
		return s, nil
	}
	return s, invalid(s, c)
}

// setAnswer writes the slot at the cursor on a copy of the answers.
func setAnswer(s Session, a quiz.Answer) Session {
	answers := slices.Clone(s.Answers)
	answers[s.Current] = a
	s.Answers = answers
	return s
}

func invalid(s Session, c Command) error {
	return fmt.Errorf("%w: %T while %s", ErrInvalidTransition, c, s.Phase)
}
