package quiz

import (
	"encoding/json"
	"fmt"
)

// Type identifies how a question is answered and graded.
type Type string

const (
	MultipleChoice Type = "multiple-choice"
	TrueFalse      Type = "true-false"
	FillBlank      Type = "fill-blank"
	ShortAnswer    Type = "short-answer"
)

// Types lists every question type in display order.
var Types = []Type{MultipleChoice, TrueFalse, FillBlank, ShortAnswer}

// Valid reports whether t is a known question type.
func (t Type) Valid() bool {
	switch t {
	case MultipleChoice, TrueFalse, FillBlank, ShortAnswer:
		return true
	}
	return false
}

// Question is a single generated quiz question. Questions are never
// mutated once a session starts; only the answer slots change.
type Question struct {
	// Type selects which of the fields below are meaningful.
	Type Type

	// Prompt is the question text shown to the learner.
	Prompt string

	// Options and CorrectIndex are set for multiple-choice questions.
	Options      []string
	CorrectIndex *int

	// CorrectBool is set for true-false questions.
	CorrectBool *bool

	// CorrectText is set for fill-blank questions.
	CorrectText *string

	// KeyTerms lists acceptable keywords for short-answer questions.
	// Empty means any response is accepted.
	KeyTerms []string
}

// NewMultipleChoice builds a multiple-choice question.
func NewMultipleChoice(prompt string, options []string, correct int) Question {
	return Question{Type: MultipleChoice, Prompt: prompt, Options: options, CorrectIndex: &correct}
}

// NewTrueFalse builds a true-false question.
func NewTrueFalse(prompt string, correct bool) Question {
	return Question{Type: TrueFalse, Prompt: prompt, CorrectBool: &correct}
}

// NewFillBlank builds a fill-in-the-blank question.
func NewFillBlank(prompt, answer string) Question {
	return Question{Type: FillBlank, Prompt: prompt, CorrectText: &answer}
}

// NewShortAnswer builds a short-answer question graded by key terms.
func NewShortAnswer(prompt string, keyTerms ...string) Question {
	return Question{Type: ShortAnswer, Prompt: prompt, KeyTerms: keyTerms}
}

// wireQuestion is the JSON shape exchanged with the generation service.
type wireQuestion struct {
	Type               Type            `json:"type"`
	Question           string          `json:"question"`
	Options            []string        `json:"options,omitempty"`
	CorrectAnswerIndex *int            `json:"correctAnswerIndex,omitempty"`
	CorrectAnswer      json.RawMessage `json:"correctAnswer,omitempty"`
	KeyTerms           []string        `json:"keyTerms,omitempty"`
}

// MarshalJSON emits only the fields that belong to the question's type.
func (q Question) MarshalJSON() ([]byte, error) {
	w := wireQuestion{Type: q.Type, Question: q.Prompt}

	switch q.Type {
	case MultipleChoice:
		w.Options = q.Options
		if w.Options == nil {
			w.Options = []string{}
		}
		w.CorrectAnswerIndex = q.CorrectIndex
	case TrueFalse:
		if q.CorrectBool != nil {
			raw, _ := json.Marshal(*q.CorrectBool)
			w.CorrectAnswer = raw
		}
	case FillBlank:
		if q.CorrectText != nil {
			raw, err := json.Marshal(*q.CorrectText)
			if err != nil {
				return nil, err
			}
			w.CorrectAnswer = raw
		}
	case ShortAnswer:
		w.KeyTerms = q.KeyTerms
		if w.KeyTerms == nil {
			w.KeyTerms = []string{}
		}
	}

	return json.Marshal(w)
}

// UnmarshalJSON reads only the fields that belong to the decoded type.
// A correctAnswer of the wrong JSON kind is treated as absent.
func (q *Question) UnmarshalJSON(data []byte) error {
	var w wireQuestion
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*q = Question{Type: w.Type, Prompt: w.Question}

	switch w.Type {
	case MultipleChoice:
		q.Options = w.Options
		q.CorrectIndex = w.CorrectAnswerIndex
	case TrueFalse:
		var b bool
		if len(w.CorrectAnswer) > 0 && json.Unmarshal(w.CorrectAnswer, &b) == nil {
			q.CorrectBool = &b
		}
	case FillBlank:
		var s string
		if len(w.CorrectAnswer) > 0 && json.Unmarshal(w.CorrectAnswer, &s) == nil {
			q.CorrectText = &s
		}
	case ShortAnswer:
		q.KeyTerms = w.KeyTerms
	}
	return nil
}

// Validate checks that the type-specific fields are present and in range.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("question text is empty")
	}

	switch q.Type {
	case MultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("multiple-choice question needs at least 2 options, got %d", len(q.Options))
		}
		if q.CorrectIndex == nil {
			return fmt.Errorf("multiple-choice question has no correct index")
		}
		if *q.CorrectIndex < 0 || *q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("correct index %d out of range [0,%d)", *q.CorrectIndex, len(q.Options))
		}
	case TrueFalse:
		if q.CorrectBool == nil {
			return fmt.Errorf("true-false question has no correct answer")
		}
	case FillBlank:
		if q.CorrectText == nil || *q.CorrectText == "" {
			return fmt.Errorf("fill-blank question has no correct answer")
		}
	case ShortAnswer:
		// Key terms are optional.
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}
