// Package questiongen turns study notes into quiz questions, either through
// an LLM provider, a remote question service or a local sentence-based
// generator.
package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// Generator produces a set of quiz questions for a request.
type Generator interface {
	// Generate returns up to req.Count questions. Implementations return a
	// *GenerationError when no usable set could be produced.
	Generate(ctx context.Context, req Request) ([]quiz.Question, error)
}

// MaxCount is the most questions a single request may ask for.
const MaxCount = 50

// Request describes what to generate. The JSON tags are the wire format of
// POST /api/generate-questions.
type Request struct {
	Notes      string `json:"notesContent" validate:"required"`
	Mode       string `json:"practiceMode" validate:"required,oneof=multiple-choice true-false fill-blank short-answer random"`
	Difficulty string `json:"difficultyLevel" validate:"required,oneof=beginner intermediate expert"`
	Count      int    `json:"count" validate:"min=1,max=50"`
}

// Defaults fills the fields a client may omit, the same way the question
// service always has.
func (r Request) Defaults() Request {
	if r.Mode == "" {
		r.Mode = string(quiz.MultipleChoice)
	}
	if r.Difficulty == "" {
		r.Difficulty = quiz.Beginner
	}
	if r.Count == 0 {
		r.Count = 5
	}
	return r
}

var validate = validator.New()

// Validate checks the request against its field constraints. Failures wrap
// ErrInvalidRequest.
func (r Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// typeFor returns the question type a mode asks for; random has none.
func typeFor(mode string) (quiz.Type, bool) {
	t := quiz.Type(mode)
	return t, t.Valid()
}
