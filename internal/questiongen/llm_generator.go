package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/quiz"
)

// LLMGenerator implements Generator using an LLM provider. Short replies are
// padded from a filler generator so callers get req.Count questions.
type LLMGenerator struct {
	provider llm.Provider
	filler   Generator
	config   Config
	logger   *slog.Logger
}

// New creates an LLMGenerator. filler may be nil, in which case short
// replies are returned as they are; logger may be nil.
func New(provider llm.Provider, filler Generator, cfg Config, logger *slog.Logger) *LLMGenerator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LLMGenerator{
		provider: provider,
		filler:   filler,
		config:   cfg,
		logger:   logger.With("component", "questiongen"),
	}
}

// Generate asks the provider for req.Count questions.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) ([]quiz.Question, error) {
	req = req.Defaults()
	if err := req.Validate(); err != nil {
		return nil, &GenerationError{Stage: StageRequest, Err: err}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	notes := CleanNotes(req.Notes, g.config.NotesLimit)
	llmReq := llm.Request{
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
		TopP:        g.config.TopP,
	}
	if g.config.Structured {
		llmReq.System = structuredSystemPrompt
		llmReq.Messages = llm.UserMessage(structuredUserMessage(req, notes))
		llmReq.Schema = QuestionSetSchema
	} else {
		llmReq.Messages = llm.UserMessage(textPrompt(req, notes))
	}

	resp, err := g.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, &GenerationError{Stage: StageProvider, Err: err}
	}

	var questions []quiz.Question
	if g.config.Structured {
		questions, err = g.parseStructured(resp.Content)
		if err != nil {
			return nil, &GenerationError{Stage: StageParse, Err: err}
		}
	} else {
		if resp.Text() == "" {
			return nil, &GenerationError{Stage: StageParse, Err: errors.New("no text was generated by the model")}
		}
		questions = ParseBlocks(resp.Text(), req.Mode, req.Count)
	}

	questions = g.keepValid(questions, req)
	if len(questions) > req.Count {
		questions = questions[:req.Count]
	}

	if missing := req.Count - len(questions); missing > 0 && g.filler != nil {
		g.logger.Info("padding short question set", "parsed", len(questions), "missing", missing)
		fill := req
		fill.Count = missing
		extra, err := g.filler.Generate(ctx, fill)
		if err != nil {
			g.logger.Warn("filler generation failed", "error", err)
		}
		questions = append(questions, extra...)
	}

	if len(questions) == 0 {
		return nil, &GenerationError{Stage: StageParse, Err: ErrNoQuestions}
	}
	return questions, nil
}

func (g *LLMGenerator) parseStructured(content json.RawMessage) ([]quiz.Question, error) {
	var raw questionSetOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	out := make([]quiz.Question, 0, len(raw.Questions))
	for _, item := range raw.Questions {
		out = append(out, item.toQuestion())
	}
	return out, nil
}

// keepValid drops duplicates and questions failing a validator.
func (g *LLMGenerator) keepValid(qs []quiz.Question, req Request) []quiz.Question {
	qs = dedupe(qs)
	out := qs[:0]
	for _, q := range qs {
		if verr := runValidators(g.config.Validators, q, req); verr != nil {
			g.logger.Debug("dropping generated question", "validator", verr.Validator, "reason", verr.Message)
			continue
		}
		out = append(out, q)
	}
	return out
}

// Probe sends the one-question probe prompt and returns the raw reply.
func Probe(ctx context.Context, p llm.Provider) (string, error) {
	resp, err := p.Generate(llm.WithPurpose(ctx, llm.PurposeProbe), llm.Request{
		Messages:  llm.UserMessage(ProbePrompt),
		MaxTokens: 512,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
