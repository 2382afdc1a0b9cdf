package llm

import "context"

// Purpose labels why a request was made. It is stored with every recorded
// LLM event and grouped by `studybuddy llm stats`.
type Purpose string

const (
	PurposeQuestionGen Purpose = "question-gen"
	PurposeProbe       Purpose = "probe"
	PurposeUnknown     Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose returns a context whose requests are recorded under p.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the purpose set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
