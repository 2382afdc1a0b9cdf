package questiongen

import (
	"context"
	"errors"
	"log/slog"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// FallbackGenerator tries Primary and, when it fails, generates the whole
// set with Secondary. Invalid requests are not retried.
type FallbackGenerator struct {
	Primary   Generator
	Secondary Generator
	Logger    *slog.Logger
}

func (f *FallbackGenerator) Generate(ctx context.Context, req Request) ([]quiz.Question, error) {
	qs, err := f.Primary.Generate(ctx, req)
	if err == nil {
		return qs, nil
	}

	var gerr *GenerationError
	if errors.As(err, &gerr) && gerr.Stage == StageRequest {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, err
	}

	if f.Logger != nil {
		f.Logger.Warn("primary generator failed, falling back to local generation", "error", err)
	}
	qs, ferr := f.Secondary.Generate(ctx, req)
	if ferr != nil {
		return nil, &GenerationError{Stage: StageFallback, Err: errors.Join(err, ferr)}
	}
	return qs, nil
}
