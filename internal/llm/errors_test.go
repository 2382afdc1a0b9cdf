package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not configured", fmt.Errorf("setup: %w", ErrNotConfigured), "No question generator is configured."},
		{"timeout", fmt.Errorf("generate: %w", context.DeadlineExceeded), "The question generator took too long to respond."},
		{"rate limit", &ErrRateLimit{Err: errors.New("429")}, "The question generator is busy. Please try again shortly."},
		{"invalid", &ErrInvalidResponse{Err: errors.New("bad json")}, "The question generator returned an unusable answer."},
		{"truncated", &ErrMaxTokensExceeded{}, "The question generator returned an unusable answer."},
		{"unavailable", &ErrProviderUnavailable{Err: errors.New("dial tcp")}, "The question generator is unavailable."},
		{"other", errors.New("boom"), "Question generation failed."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
