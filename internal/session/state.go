package session

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// Phase represents where a practice round currently is.
type Phase int

const (
	PhaseConfiguring Phase = iota // Choosing notes, mode, difficulty and count
	PhaseGenerating               // Waiting for the question set
	PhaseAnswering                // Navigating and answering questions
	PhaseReviewing                // Showing the scored review
)

func (p Phase) String() string {
	switch p {
	case PhaseConfiguring:
		return "configuring"
	case PhaseGenerating:
		return "generating"
	case PhaseAnswering:
		return "answering"
	case PhaseReviewing:
		return "reviewing"
	}
	return "phase(" + strconv.Itoa(int(p)) + ")"
}

// Config is what the learner chooses before questions are generated.
type Config struct {
	Notes      string
	Mode       string
	Difficulty string
	Count      int
}

// Complete reports whether every field has been chosen with a usable value.
func (c Config) Complete() bool {
	return c.Notes != "" &&
		quiz.ValidMode(c.Mode) &&
		quiz.ValidDifficulty(c.Difficulty) &&
		c.Count > 0
}

// Session is the full state of one practice run. It is a value: Apply
// returns a new Session and never mutates the one it was given.
type Session struct {
	// ID identifies the round once questions arrive. Empty while configuring.
	ID string

	// Phase is the current state machine phase.
	Phase Phase

	// Config is kept across rounds so "new practice" starts from the last choice.
	Config Config

	// Questions is fixed for the duration of a round.
	Questions []quiz.Question

	// Answers has exactly one slot per question.
	Answers []quiz.Answer

	// Current is a valid index into Questions whenever Questions is non-empty.
	Current int

	// ConfirmPending is set when Finish was requested with unanswered slots.
	ConfirmPending bool

	// Err is the last generation failure, cleared when a new request starts.
	Err error
}

// New returns a session in the configuring phase.
func New(cfg Config) Session {
	return Session{Phase: PhaseConfiguring, Config: cfg}
}

// CurrentQuestion returns the question at the cursor.
func (s Session) CurrentQuestion() (quiz.Question, bool) {
	if s.Current < 0 || s.Current >= len(s.Questions) {
		return quiz.Question{}, false
	}
	return s.Questions[s.Current], true
}

// CurrentAnswer returns the answer slot at the cursor.
func (s Session) CurrentAnswer() quiz.Answer {
	if s.Current < 0 || s.Current >= len(s.Answers) {
		return quiz.NoAnswer()
	}
	return s.Answers[s.Current]
}

// Unanswered counts slots still holding the unanswered sentinel.
func (s Session) Unanswered() int {
	n := 0
	for _, a := range s.Answers {
		if !a.Answered() {
			n++
		}
	}
	return n
}

// Summary scores the round. Safe to call in any phase.
func (s Session) Summary() quiz.Summary {
	return quiz.Summarize(s.Questions, s.Answers, s.Config.Mode, s.Config.Difficulty)
}

func newID() string {
	return uuid.New().String()
}
