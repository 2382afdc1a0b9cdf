package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries failed requests with exponential backoff. Question
// generation runs with three attempts starting at one second.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	jitter func() float64
}

// WithRetry wraps p. At least one attempt is always made.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	cfg.Multiplier = max(cfg.Multiplier, 1)
	return &RetryProvider{inner: p, config: cfg, jitter: rand.Float64}
}

// verdict is what the retry loop does after a failed attempt.
type verdict int

const (
	giveUp verdict = iota
	retry
	retryOnce
)

// classify decides whether err is worth another attempt. Cancellation and
// an exhausted token budget are final; a malformed reply gets one more try
// and everything else is treated as transient.
func classify(err error) verdict {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return giveUp
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return giveUp
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return retryOnce
	}
	return retry
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	invalidSeen := false

	for attempt := 1; ; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case giveUp:
			return nil, err
		case retryOnce:
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
		if attempt >= r.config.MaxAttempts {
			return nil, err
		}

		timer := time.NewTimer(r.wait(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// wait returns the pause after the given 1-based attempt: the provider's
// Retry-After when rate limited, otherwise InitialWait·Multiplier^(n-1)
// capped at MaxWait with ±20% jitter.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	if r.config.MaxWait > 0 {
		d = math.Min(d, float64(r.config.MaxWait))
	}
	d *= 1 + 0.2*(2*r.jitter()-1)
	return time.Duration(math.Max(d, 0))
}
