package questiongen

import "time"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Structured asks the provider for JSON matching QuestionSetSchema.
	// When false the plain-text prompt is used and the reply is read
	// with ParseBlocks.
	Structured bool

	// Validators run on every generated question in order. A question
	// failing any of them is dropped.
	Validators []Validator

	// NotesLimit is how many characters of the notes reach the prompt.
	NotesLimit int

	// MaxTokens is the token budget for the reply.
	MaxTokens int

	// Temperature and TopP control sampling.
	Temperature float64
	TopP        float64

	// Timeout bounds one Generate call, retries included. Zero means no
	// limit beyond the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns a Config with the standard validator chain and the
// sampling settings the question service has always used.
func DefaultConfig() Config {
	return Config{
		Structured: true,
		Validators: []Validator{
			&StructuralValidator{},
			&ModeValidator{},
			&BlankValidator{},
		},
		NotesLimit:  DefaultNotesLimit,
		MaxTokens:   2048,
		Temperature: 0.7,
		TopP:        0.9,
		Timeout:     90 * time.Second,
	}
}
