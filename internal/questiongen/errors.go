package questiongen

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuestions means generation finished without a single usable
	// question.
	ErrNoQuestions = errors.New("no questions were generated")

	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid generation request")
)

// Stage names where in the pipeline a generation failed.
type Stage string

const (
	StageRequest  Stage = "request"
	StageProvider Stage = "provider"
	StageParse    Stage = "parse"
	StageRemote   Stage = "remote"
	StageFallback Stage = "fallback"
)

// GenerationError is returned by every Generator when no question set could
// be produced.
type GenerationError struct {
	Stage Stage
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed (%s): %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx answer from the remote question service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("question service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("question service returned status %d: %s", e.StatusCode, e.Message)
}
