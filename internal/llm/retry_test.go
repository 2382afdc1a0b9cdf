package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 10 * time.Millisecond, Multiplier: 2}
}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}}
}

func malformed() MockResponse {
	return MockResponse{Err: &ErrInvalidResponse{Content: []byte(`{"questions":`), Err: errors.New("unexpected end of JSON")}}
}

func TestRetry_Attempts(t *testing.T) {
	tests := []struct {
		name      string
		cfg       RetryConfig
		script    []MockResponse
		wantCalls int
		wantErr   any
	}{
		{"first attempt succeeds", fastRetry(), []MockResponse{TextReply("ok")}, 1, nil},
		{"transient then success", fastRetry(), []MockResponse{down(), TextReply("ok")}, 2, nil},
		{"rate limited then success", fastRetry(), []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, TextReply("ok")}, 2, nil},
		{"every attempt fails", fastRetry(), []MockResponse{down(), down(), down(), TextReply("unreached")}, 3, new(*ErrProviderUnavailable)},
		{"token budget is final", fastRetry(), []MockResponse{{Err: &ErrMaxTokensExceeded{}}, TextReply("unreached")}, 1, new(*ErrMaxTokensExceeded)},
		{"malformed reply retried once", fastRetry(), []MockResponse{malformed(), malformed(), TextReply("unreached")}, 2, new(*ErrInvalidResponse)},
		{"malformed then transient", fastRetry(), []MockResponse{malformed(), down(), TextReply("ok")}, 3, nil},
		{"zero attempts still calls once", RetryConfig{}, []MockResponse{down(), TextReply("unreached")}, 1, new(*ErrProviderUnavailable)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			resp, err := WithRetry(mock, tt.cfg).Generate(t.Context(), Request{})

			assert.Equal(t, tt.wantCalls, mock.CallCount())
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "ok", resp.Text())
				return
			}
			assert.ErrorAs(t, err, tt.wantErr)
		})
	}
}

func TestRetry_StopsOnCancelledContext(t *testing.T) {
	mock := NewMockProvider(down(), TextReply("ok"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Minute, Multiplier: 2})
	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_Wait(t *testing.T) {
	r := &RetryProvider{
		config: RetryConfig{InitialWait: time.Second, MaxWait: 3 * time.Second, Multiplier: 2},
		jitter: func() float64 { return 0.5 },
	}
	assert.Equal(t, time.Second, r.wait(1, errors.New("x")))
	assert.Equal(t, 2*time.Second, r.wait(2, errors.New("x")))
	assert.Equal(t, 3*time.Second, r.wait(3, errors.New("x")), "capped at MaxWait")
	assert.Equal(t, 7*time.Second, r.wait(1, &ErrRateLimit{RetryAfter: 7 * time.Second}))

	r.jitter = func() float64 { return 1 }
	assert.InDelta(t, float64(1200*time.Millisecond), float64(r.wait(1, errors.New("x"))), float64(time.Microsecond))
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), fastRetry()).ModelID())
}
