package questiongen

import (
	"fmt"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// Validator checks a generated question.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in logs, e.g. "structural".
	Name() string

	// Validate returns nil if q is usable for req.
	Validate(q quiz.Question, req Request) *ValidationError
}

// ValidationError describes why a question was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// runValidators returns the first failure, or nil.
func runValidators(vs []Validator, q quiz.Question, req Request) *ValidationError {
	for _, v := range vs {
		if err := v.Validate(q, req); err != nil {
			return err
		}
	}
	return nil
}
