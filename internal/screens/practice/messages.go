package practice

import (
	"time"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// notesLoadedMsg is sent when a notes file has been extracted.
type notesLoadedMsg struct {
	Name string
	Text string
	Err  error
}

// questionsReadyMsg is sent when the generator returns.
type questionsReadyMsg struct {
	Questions []quiz.Question
	Err       error
}

// spinnerTickMsg animates the busy indicator while a request is in flight.
type spinnerTickMsg time.Time

// publishedMsg reports the outcome of publishing a session event.
type publishedMsg struct {
	Topic string
	Err   error
}
