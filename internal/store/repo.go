package store

import (
	"context"
	"time"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents lists events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// Result is one finished practice round.
type Result struct {
	ID        int
	Sequence  int64
	SessionID string
	Timestamp time.Time
	Summary   quiz.Summary
}

// ModeStats aggregates stored results for one practice mode.
type ModeStats struct {
	Mode         string
	Rounds       int
	AvgScore     float64
	BestScore    int
	CorrectCount int
	Total        int
}

// ResultRepo stores finished practice rounds.
type ResultRepo interface {
	// Save records a result. Saving the same session ID twice is a no-op,
	// so redelivered events do not duplicate history.
	Save(ctx context.Context, r Result) error

	// List returns results newest first.
	List(ctx context.Context, opts QueryOpts) ([]Result, error)

	// Get returns one result, or nil if it does not exist.
	Get(ctx context.Context, id int) (*Result, error)

	// StatsByMode aggregates results per practice mode, ordered by mode.
	StatsByMode(ctx context.Context) ([]ModeStats, error)
}
