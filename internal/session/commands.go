package session

import "github.com/abhisek/studybuddy/internal/quiz"

// Command is a single user or system action consumed by Apply.
type Command interface {
	command()
}

// Configuration commands, valid while configuring.
type (
	SetNotes         struct{ Text string }
	SelectMode       struct{ Mode string }
	SelectDifficulty struct{ Difficulty string }
	SetCount         struct{ Count int }

	// StartGeneration is issued when the learner asks for questions.
	StartGeneration struct{}
)

// Generation outcomes, valid while generating.
type (
	GenerationSucceeded struct{ Questions []quiz.Question }
	GenerationFailed    struct{ Err error }
)

// Answering commands.
type (
	SelectOption struct{ Index int }
	SetTrueFalse struct{ Value bool }
	EnterText    struct{ Text string }
	ClearAnswer  struct{}

	NextQuestion     struct{}
	PreviousQuestion struct{}

	// Finish ends the round, or opens the confirmation gate when
	// questions are still unanswered.
	Finish        struct{}
	ConfirmFinish struct{}
	CancelFinish  struct{}
)

// NewPractice discards the reviewed round and returns to configuring.
type NewPractice struct{}

func (SetNotes) command()            {}
func (SelectMode) command()          {}
func (SelectDifficulty) command()    {}
func (SetCount) command()            {}
func (StartGeneration) command()     {}
func (GenerationSucceeded) command() {}
func (GenerationFailed) command()    {}
func (SelectOption) command()        {}
func (SetTrueFalse) command()        {}
func (EnterText) command()           {}
func (ClearAnswer) command()         {}
func (NextQuestion) command()        {}
func (PreviousQuestion) command()    {}
func (Finish) command()              {}
func (ConfirmFinish) command()       {}
func (CancelFinish) command()        {}
func (NewPractice) command()         {}
