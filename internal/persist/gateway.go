package persist

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

// Keys written by the gateway. Values are always strings.
const (
	KeyNotes      = "notesContent"
	KeyMode       = "practiceMode"
	KeyDifficulty = "difficultyLevel"
	KeyCount      = "questionCount"
	KeyTimestamp  = "sessionTimestamp"
	KeyDark       = "prefersDark"
)

// DefaultMaxAge is how long a saved configuration stays restorable.
const DefaultMaxAge = 7 * 24 * time.Hour

// Restored is the configuration recovered from a previous run. The zero
// value means nothing was restored.
type Restored struct {
	Notes      string
	Mode       string
	Difficulty string
	Count      int
}

// Empty reports whether nothing was restored.
func (r Restored) Empty() bool {
	return r == Restored{}
}

// Gateway reads and writes the persisted configuration.
type Gateway struct {
	kv     KV
	logger *slog.Logger
	now    func() time.Time
	maxAge time.Duration
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithClock overrides the time source used for stamping and expiry.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// WithMaxAge overrides DefaultMaxAge. Non-positive values are ignored.
func WithMaxAge(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.maxAge = d
		}
	}
}

// NewGateway wraps kv. A nil logger discards log output.
func NewGateway(kv KV, logger *slog.Logger, opts ...Option) *Gateway {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &Gateway{
		kv:     kv,
		logger: logger.With("component", "persist"),
		now:    time.Now,
		maxAge: DefaultMaxAge,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Save writes value under key and stamps the session timestamp.
func (g *Gateway) Save(ctx context.Context, key, value string) {
	if err := g.kv.Set(ctx, key, value); err != nil {
		g.logger.Warn("save failed", "key", key, "error", err)
		return
	}
	g.stamp(ctx)
}

// Load returns the stored value for key. Errors read as absent.
func (g *Gateway) Load(ctx context.Context, key string) (string, bool) {
	v, ok, err := g.kv.Get(ctx, key)
	if err != nil {
		g.logger.Warn("load failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// SaveConfig saves all four configuration values.
func (g *Gateway) SaveConfig(ctx context.Context, r Restored) {
	g.Save(ctx, KeyNotes, r.Notes)
	g.Save(ctx, KeyMode, r.Mode)
	g.Save(ctx, KeyDifficulty, r.Difficulty)
	g.Save(ctx, KeyCount, strconv.Itoa(r.Count))
}

// RestoreAll returns the saved configuration. When the session timestamp
// is missing, unreadable or older than the max age, the store is cleared
// and an empty Restored is returned.
func (g *Gateway) RestoreAll(ctx context.Context) Restored {
	if g.expired(ctx) {
		g.Clear(ctx)
		return Restored{}
	}

	notes, _ := g.Load(ctx, KeyNotes)
	mode, _ := g.Load(ctx, KeyMode)
	difficulty, _ := g.Load(ctx, KeyDifficulty)
	countText, _ := g.Load(ctx, KeyCount)

	count, err := strconv.Atoi(countText)
	if err != nil || count < 0 {
		count = 0
	}
	return Restored{Notes: notes, Mode: mode, Difficulty: difficulty, Count: count}
}

// SetPrefersDark stores the theme preference. Like any save it stamps the
// session timestamp.
func (g *Gateway) SetPrefersDark(ctx context.Context, dark bool) {
	g.Save(ctx, KeyDark, strconv.FormatBool(dark))
}

// PrefersDark reports whether the dark theme was chosen.
func (g *Gateway) PrefersDark(ctx context.Context) bool {
	v, _ := g.Load(ctx, KeyDark)
	return v == "true"
}

// Clear removes every stored key.
func (g *Gateway) Clear(ctx context.Context) {
	if err := g.kv.Clear(ctx); err != nil {
		g.logger.Warn("clear failed", "error", err)
	}
}

func (g *Gateway) stamp(ctx context.Context) {
	ts := strconv.FormatInt(g.now().UnixMilli(), 10)
	if err := g.kv.Set(ctx, KeyTimestamp, ts); err != nil {
		g.logger.Warn("stamp failed", "error", err)
	}
}

func (g *Gateway) expired(ctx context.Context) bool {
	raw, ok := g.Load(ctx, KeyTimestamp)
	if !ok {
		return true
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		g.logger.Debug("unreadable session timestamp", "value", raw)
		return true
	}
	return g.now().Sub(time.UnixMilli(ms)) > g.maxAge
}
