package llm

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/store"
)

type eventSink struct {
	store.EventRepo
	got []store.LLMRequestEventData
	err error
}

func (s *eventSink) AppendLLMRequest(_ context.Context, ev store.LLMRequestEventData) error {
	s.got = append(s.got, ev)
	return s.err
}

func TestLogging_StoresEvent(t *testing.T) {
	inner := NewMockProvider(MockResponse{Content: []byte(`{"questions":[]}`), Usage: Usage{InputTokens: 120, OutputTokens: 40}})
	sink := &eventSink{}
	var out bytes.Buffer
	p := WithLogging(inner, "ollama", sink, slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, err := p.Generate(WithPurpose(t.Context(), PurposeQuestionGen), Request{
		System:    "sys",
		Messages:  UserMessage("notes"),
		Schema:    answerSchema,
		MaxTokens: 2048,
	})
	require.NoError(t, err)
	require.Len(t, sink.got, 1)

	ev := sink.got[0]
	assert.Equal(t, "ollama", ev.Provider)
	assert.Equal(t, "mock", ev.Model)
	assert.Equal(t, "question-gen", ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 120, ev.InputTokens)
	assert.Equal(t, 40, ev.OutputTokens)
	assert.Equal(t, `{"questions":[]}`, ev.ResponseBody)
	assert.Contains(t, ev.RequestBody, "[system]\nsys")
	assert.Contains(t, ev.RequestBody, "[user]\nnotes")
	assert.Contains(t, ev.RequestBody, "[schema answer-test]")
	assert.Contains(t, ev.RequestBody, "max_tokens=2048")
	assert.Contains(t, out.String(), "purpose=question-gen")
}

func TestLogging_FailurePassesThrough(t *testing.T) {
	inner := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("refused")}})
	sink := &eventSink{err: errors.New("disk full")}
	var out bytes.Buffer
	p := WithLogging(inner, "openai", sink, slog.New(slog.NewTextHandler(&out, nil)))

	_, err := p.Generate(t.Context(), Request{})
	var unavailable *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavailable)

	require.Len(t, sink.got, 1)
	assert.False(t, sink.got[0].Success)
	assert.Contains(t, sink.got[0].ErrorMessage, "refused")
	assert.Equal(t, "unknown", sink.got[0].Purpose)
	assert.Contains(t, out.String(), "store llm event")
	assert.Contains(t, out.String(), "disk full")
}

func TestLogging_NoSink(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: []byte(`{}`)}), "mock", nil, nil)
	_, err := p.Generate(t.Context(), Request{})
	assert.NoError(t, err)
}
