package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/quiz"
)

func testRequest(mode string, count int) Request {
	return Request{Notes: biologyNotes, Mode: mode, Difficulty: quiz.Beginner, Count: count}
}

func structuredJSON() json.RawMessage {
	return json.RawMessage(`{"questions": [
		{"type": "multiple-choice", "question": "What do mitochondria release?", "options": ["Energy", "Light", "Water", "Salt"], "correct_index": 0, "answer": "", "key_terms": []},
		{"type": "true-false", "question": "Chloroplasts are found in leaf cells.", "options": [], "correct_index": 0, "answer": "true", "key_terms": []},
		{"type": "fill-blank", "question": "Plants convert light into _____ energy.", "options": [], "correct_index": 0, "answer": "chemical", "key_terms": []},
		{"type": "short-answer", "question": "Explain cellular respiration.", "options": [], "correct_index": 0, "answer": "", "key_terms": ["glucose", " energy ", ""]}
	]}`)
}

func TestRequestDefaultsAndValidate(t *testing.T) {
	req := Request{Notes: "some notes"}.Defaults()
	if req.Mode != "multiple-choice" || req.Difficulty != "beginner" || req.Count != 5 {
		t.Fatalf("defaults = %+v", req)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		req  Request
		msg  string
	}{
		{"no notes", Request{Mode: "random", Difficulty: "expert", Count: 1}, "Notes is required"},
		{"bad mode", Request{Notes: "n", Mode: "essay", Difficulty: "expert", Count: 1}, "Mode must be one of"},
		{"too many", Request{Notes: "n", Mode: "random", Difficulty: "expert", Count: 51}, "Count must be at most 50"},
		{"negative", Request{Notes: "n", Mode: "random", Difficulty: "expert", Count: -1}, "Count must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestGenerate_Structured(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: structuredJSON()})
	gen := New(mock, nil, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), testRequest("random", 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 4 {
		t.Fatalf("got %d questions, want 4", len(qs))
	}
	if *qs[0].CorrectIndex != 0 || qs[0].Options[0] != "Energy" {
		t.Errorf("mc = %+v", qs[0])
	}
	if qs[1].Prompt != "True or False: Chloroplasts are found in leaf cells." || !*qs[1].CorrectBool {
		t.Errorf("tf = %+v", qs[1])
	}
	if *qs[2].CorrectText != "chemical" {
		t.Errorf("fill = %+v", qs[2])
	}
	if strings.Join(qs[3].KeyTerms, ",") != "glucose,energy" {
		t.Errorf("key terms = %v", qs[3].KeyTerms)
	}

	req := mock.Requests()[0]
	if req.Schema != QuestionSetSchema {
		t.Error("expected the question set schema")
	}
	if req.MaxTokens != 2048 || req.Temperature != 0.7 || req.TopP != 0.9 {
		t.Errorf("sampling = %d/%v/%v", req.MaxTokens, req.Temperature, req.TopP)
	}
	if !strings.Contains(req.Messages[0].Content, "Number of questions: 4") {
		t.Errorf("user message = %q", req.Messages[0].Content)
	}
}

func TestGenerate_TextPath(t *testing.T) {
	reply := "Question: Plants use light.\nAnswer: True\n\nQuestion: Mitochondria are plants.\nAnswer: False\n"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(reply)})
	cfg := DefaultConfig()
	cfg.Structured = false
	gen := New(mock, nil, cfg, nil)

	qs, err := gen.Generate(context.Background(), testRequest("true-false", 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 || *qs[1].CorrectBool {
		t.Fatalf("got %+v", qs)
	}

	req := mock.Requests()[0]
	if req.Schema != nil || req.System != "" {
		t.Error("text path must not send a schema or system prompt")
	}
	prompt := req.Messages[0].Content
	if !strings.Contains(prompt, "Generate EXACTLY 2 true/false questions.") {
		t.Errorf("prompt = %q", prompt)
	}
	if strings.Contains(prompt, "\n\n\n") || !strings.Contains(prompt, "Photosynthesis is the process") {
		t.Errorf("notes not cleaned into prompt: %q", prompt)
	}
}

func TestGenerate_PadsShortSet(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: structuredJSON()})
	gen := New(mock, NewLocalGenerator(rand.NewPCG(3, 4)), DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), testRequest("fill-blank", 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("got %d questions, want 5", len(qs))
	}
	// Only the fill-blank question passes the mode validator.
	if *qs[0].CorrectText != "chemical" {
		t.Errorf("first question should come from the model: %+v", qs[0])
	}
	for i, q := range qs {
		if q.Type != quiz.FillBlank {
			t.Errorf("question %d type = %s", i, q.Type)
		}
	}
}

func TestGenerate_TruncatesToCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: structuredJSON()})
	gen := New(mock, nil, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), testRequest("random", 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Errorf("got %d questions, want 2", len(qs))
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		resp      llm.MockResponse
		wantStage Stage
		wantIs    error
	}{
		{"provider", llm.MockResponse{Err: &llm.ErrRateLimit{}}, StageProvider, nil},
		{"bad json", llm.MockResponse{Content: json.RawMessage(`{"questions": [`)}, StageParse, nil},
		{"nothing usable", llm.MockResponse{Content: json.RawMessage(`{"questions": [{"type": "essay", "question": "x"}]}`)}, StageParse, ErrNoQuestions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := New(llm.NewMockProvider(tt.resp), nil, DefaultConfig(), nil)
			_, err := gen.Generate(context.Background(), testRequest("random", 3))
			var gerr *GenerationError
			if !errors.As(err, &gerr) {
				t.Fatalf("expected GenerationError, got %v", err)
			}
			if gerr.Stage != tt.wantStage {
				t.Errorf("stage = %s, want %s", gerr.Stage, tt.wantStage)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("expected %v in chain, got %v", tt.wantIs, err)
			}
		})
	}
}

func TestGenerate_InvalidRequestSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := New(mock, nil, DefaultConfig(), nil)
	_, err := gen.Generate(context.Background(), Request{Mode: "random"})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Error("provider should not be called for an invalid request")
	}
}

func TestFallbackGenerator(t *testing.T) {
	local := NewLocalGenerator(rand.NewPCG(5, 6))
	failing := New(llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("refused")}}), nil, DefaultConfig(), nil)
	gen := &FallbackGenerator{Primary: failing, Secondary: local}

	qs, err := gen.Generate(context.Background(), testRequest("short-answer", 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 3 || qs[0].Type != quiz.ShortAnswer {
		t.Errorf("got %+v", qs)
	}

	_, err = gen.Generate(context.Background(), Request{Notes: "n", Mode: "essay"})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("invalid request should not fall back, got %v", err)
	}
}

func TestFallbackGenerator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	failing := New(llm.NewMockProvider(llm.MockResponse{Err: context.Canceled}), nil, DefaultConfig(), nil)
	gen := &FallbackGenerator{Primary: failing, Secondary: NewLocalGenerator(nil)}

	if _, err := gen.Generate(ctx, testRequest("true-false", 1)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation to pass through, got %v", err)
	}
}

func TestProbe(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("  Question: ...  ")})
	got, err := Probe(context.Background(), mock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Question: ..." {
		t.Errorf("Probe = %q", got)
	}
	if !strings.Contains(mock.Requests()[0].Messages[0].Content, "photosynthesis") {
		t.Error("probe prompt not sent")
	}
}

func TestValidators(t *testing.T) {
	req := testRequest("fill-blank", 1)
	tests := []struct {
		name string
		v    Validator
		q    quiz.Question
		ok   bool
	}{
		{"structural ok", &StructuralValidator{}, quiz.NewMultipleChoice("Q?", []string{"a", "b", "c", "d"}, 1), true},
		{"structural duplicate option", &StructuralValidator{}, quiz.NewMultipleChoice("Q?", []string{"Cell", "cell.", "c", "d"}, 1), false},
		{"structural empty option", &StructuralValidator{}, quiz.NewMultipleChoice("Q?", []string{"a", " ", "c", "d"}, 1), false},
		{"structural long prompt", &StructuralValidator{}, quiz.NewShortAnswer(strings.Repeat("x", 501)), false},
		{"structural index", &StructuralValidator{}, quiz.NewMultipleChoice("Q?", []string{"a", "b"}, 2), false},
		{"mode match", &ModeValidator{}, quiz.NewFillBlank("A _____.", "b"), true},
		{"mode mismatch", &ModeValidator{}, quiz.NewTrueFalse("T", true), false},
		{"blank present", &BlankValidator{}, quiz.NewFillBlank("The _____ is red.", "apple"), true},
		{"blank missing", &BlankValidator{}, quiz.NewFillBlank("The apple is red.", "apple"), false},
		{"blank gives answer away", &BlankValidator{}, quiz.NewFillBlank("The _____ (apple) is red.", "apple"), false},
		{"blank ignores other types", &BlankValidator{}, quiz.NewTrueFalse("T", true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate(tt.q, req)
			if (err == nil) != tt.ok {
				t.Errorf("Validate = %v, want ok=%v", err, tt.ok)
			}
		})
	}

	if (&ModeValidator{}).Validate(quiz.NewTrueFalse("T", true), testRequest("random", 1)) != nil {
		t.Error("random mode should accept any type")
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "blank", Message: "no blank"}
	if err.Error() != `validator "blank": no blank` {
		t.Errorf("got %q", err.Error())
	}
}
