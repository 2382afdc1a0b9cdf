package questiongen

import (
	"strings"

	"github.com/abhisek/studybuddy/internal/quiz"
)

const maxPromptLen = 500

// StructuralValidator checks that the type-specific fields are present and
// within limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q quiz.Question, _ Request) *ValidationError {
	if err := q.Validate(); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if len(q.Prompt) > maxPromptLen {
		return &ValidationError{Validator: v.Name(), Message: "question exceeds 500 characters"}
	}
	if q.Type == quiz.MultipleChoice {
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				return &ValidationError{Validator: v.Name(), Message: "empty option"}
			}
			k := quiz.Normalize(o)
			if seen[k] {
				return &ValidationError{Validator: v.Name(), Message: "duplicate option " + o}
			}
			seen[k] = true
		}
	}
	return nil
}

// ModeValidator rejects questions whose type differs from a single-type
// practice mode. Random mode accepts every type.
type ModeValidator struct{}

func (v *ModeValidator) Name() string { return "mode" }

func (v *ModeValidator) Validate(q quiz.Question, req Request) *ValidationError {
	want, ok := typeFor(req.Mode)
	if !ok || q.Type == want {
		return nil
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   "got " + string(q.Type) + " question in " + req.Mode + " mode",
	}
}

// BlankValidator checks that fill-blank questions show a blank and do not
// give the answer away.
type BlankValidator struct{}

func (v *BlankValidator) Name() string { return "blank" }

func (v *BlankValidator) Validate(q quiz.Question, _ Request) *ValidationError {
	if q.Type != quiz.FillBlank {
		return nil
	}
	if !strings.Contains(q.Prompt, "__") {
		return &ValidationError{Validator: v.Name(), Message: "fill-blank question has no blank"}
	}
	if q.CorrectText != nil {
		rest := strings.ReplaceAll(q.Prompt, "_", " ")
		if strings.Contains(quiz.Normalize(rest), quiz.Normalize(*q.CorrectText)) && len(*q.CorrectText) > 3 {
			return &ValidationError{Validator: v.Name(), Message: "fill-blank question contains its answer"}
		}
	}
	return nil
}
