package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type answerKind uint8

const (
	kindNone answerKind = iota
	kindChoice
	kindBool
	kindText
)

// Answer is a learner's response to one question. The zero value is the
// unanswered sentinel, distinct from every real answer including the
// empty string.
type Answer struct {
	kind  answerKind
	index int
	flag  bool
	text  string
}

// NoAnswer returns the unanswered sentinel.
func NoAnswer() Answer { return Answer{} }

// ChoiceAnswer is the index of a selected multiple-choice option.
func ChoiceAnswer(i int) Answer { return Answer{kind: kindChoice, index: i} }

// BoolAnswer is a true-false selection.
func BoolAnswer(b bool) Answer { return Answer{kind: kindBool, flag: b} }

// TextAnswer is free-text input.
func TextAnswer(s string) Answer { return Answer{kind: kindText, text: s} }

// Answered reports whether a is anything other than the sentinel.
func (a Answer) Answered() bool { return a.kind != kindNone }

// Choice returns the selected index and whether a is a choice answer.
func (a Answer) Choice() (int, bool) { return a.index, a.kind == kindChoice }

// Bool returns the selected value and whether a is a true-false answer.
func (a Answer) Bool() (bool, bool) { return a.flag, a.kind == kindBool }

// Text returns the typed text and whether a is a text answer.
func (a Answer) Text() (string, bool) { return a.text, a.kind == kindText }

// String is a debugging representation, not the display format.
func (a Answer) String() string {
	switch a.kind {
	case kindChoice:
		return "choice(" + strconv.Itoa(a.index) + ")"
	case kindBool:
		return "bool(" + strconv.FormatBool(a.flag) + ")"
	case kindText:
		return "text(" + strconv.Quote(a.text) + ")"
	}
	return "unanswered"
}

// MarshalJSON encodes the answer as null, a number, a boolean or a string.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case kindChoice:
		return json.Marshal(a.index)
	case kindBool:
		return json.Marshal(a.flag)
	case kindText:
		return json.Marshal(a.text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes null, integer, boolean or string values.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = NoAnswer()
		return nil
	}

	switch data[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*a = BoolAnswer(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
	default:
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return fmt.Errorf("answer must be null, integer, boolean or string: %w", err)
		}
		*a = ChoiceAnswer(i)
	}
	return nil
}

// NewAnswers returns n unanswered slots.
func NewAnswers(n int) []Answer {
	return make([]Answer, n)
}
