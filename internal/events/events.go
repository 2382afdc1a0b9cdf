// Package events carries practice-round events over an in-process watermill
// bus. Subscribers store results and optionally forward events to Kafka.
package events

import (
	"time"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// Topics published on the bus.
const (
	TopicSessionStarted = "session.started"
	TopicResultRecorded = "result.recorded"
)

// Topics lists every bus topic.
var Topics = []string{TopicSessionStarted, TopicResultRecorded}

// Source is set on every message's metadata.
const Source = "studybuddy"

// SessionStarted is published when a question set arrives and answering
// begins.
type SessionStarted struct {
	SessionID  string    `json:"session_id"`
	Mode       string    `json:"mode"`
	Difficulty string    `json:"difficulty"`
	Questions  int       `json:"questions"`
	Timestamp  time.Time `json:"timestamp"`
}

// ResultRecorded is published when a round reaches the review.
type ResultRecorded struct {
	SessionID string       `json:"session_id"`
	Summary   quiz.Summary `json:"summary"`
	Timestamp time.Time    `json:"timestamp"`
}
