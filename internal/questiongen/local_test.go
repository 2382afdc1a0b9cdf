package questiongen

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abhisek/studybuddy/internal/quiz"
)

const biologyNotes = `Photosynthesis is the process plants use to convert light energy into chemical energy. It takes place inside the chloroplasts of leaf cells.

Mitochondria are the organelles that release energy from glucose during cellular respiration. Cells with high energy demands contain many mitochondria.

short line`

func newTestLocal() *LocalGenerator {
	return NewLocalGenerator(rand.NewPCG(1, 2))
}

func TestLocalGenerator_CountAndType(t *testing.T) {
	for _, mode := range []quiz.Type{quiz.MultipleChoice, quiz.TrueFalse, quiz.FillBlank, quiz.ShortAnswer} {
		for _, level := range quiz.Difficulties {
			t.Run(string(mode)+"/"+level, func(t *testing.T) {
				qs, err := newTestLocal().Generate(context.Background(), Request{
					Notes: biologyNotes, Mode: string(mode), Difficulty: level, Count: 7,
				})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(qs) != 7 {
					t.Fatalf("got %d questions, want 7", len(qs))
				}
				for i, q := range qs {
					if q.Type != mode {
						t.Errorf("question %d type = %s, want %s", i, q.Type, mode)
					}
					if err := q.Validate(); err != nil {
						t.Errorf("question %d invalid: %v (%+v)", i, err, q)
					}
				}
			})
		}
	}
}

func TestLocalGenerator_RandomMixesTypes(t *testing.T) {
	qs, err := newTestLocal().Generate(context.Background(), Request{
		Notes: biologyNotes, Mode: quiz.ModeRandom, Difficulty: quiz.Beginner, Count: 40,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[quiz.Type]bool{}
	for _, q := range qs {
		seen[q.Type] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected all four types in 40 random questions, got %v", seen)
	}
}

func TestLocalGenerator_MultipleChoiceIndexPointsAtAnswer(t *testing.T) {
	g := newTestLocal()
	s := "Mitochondria are the organelles that release energy from glucose during cellular respiration"
	for range 20 {
		q := g.multipleChoice(s, quiz.Beginner)
		if len(q.Options) != 4 {
			t.Fatalf("options = %v", q.Options)
		}
		start := strings.Index(q.Prompt, "'") + 1
		phrase := strings.TrimSuffix(q.Prompt[start:], "...'?")
		i := strings.Index(s, phrase)
		if i < 0 {
			t.Fatalf("phrase %q not in sentence", phrase)
		}
		next := strings.Fields(s[i+len(phrase):])
		want := strings.Join(next[:min(3, len(next))], " ")
		if len(next) == 0 {
			want = "the end of the text"
		}
		if got := q.Options[*q.CorrectIndex]; got != want {
			t.Errorf("correct option = %q, want %q", got, want)
		}
	}
}

func TestLocalGenerator_FillBlankAnswerComesFromSentence(t *testing.T) {
	g := newTestLocal()
	s := "Chloroplasts capture sunlight, then store it as sugar"
	for range 20 {
		q := g.fillBlank(s)
		answer := *q.CorrectText
		if !strings.Contains(q.Prompt, "_____") {
			t.Fatalf("prompt %q has no blank", q.Prompt)
		}
		if strings.Replace(q.Prompt, "_____", answer, 1) != s {
			t.Errorf("filling %q into %q does not restore the sentence", answer, q.Prompt)
		}
		if strings.ContainsAny(answer, ",.") {
			t.Errorf("answer %q kept punctuation", answer)
		}
	}
}

func TestLocalGenerator_TrueFalseStatements(t *testing.T) {
	g := newTestLocal()
	s := "The liver is the largest internal organ in the body"
	var sawFalse bool
	for range 50 {
		q := g.trueFalse(s)
		if !strings.HasPrefix(q.Prompt, "True or False: ") {
			t.Fatalf("prompt %q", q.Prompt)
		}
		if *q.CorrectBool {
			if q.Prompt != "True or False: "+s {
				t.Errorf("true statement altered: %q", q.Prompt)
			}
			continue
		}
		sawFalse = true
		if q.Prompt == "True or False: "+s {
			t.Errorf("false statement left unchanged")
		}
	}
	if !sawFalse {
		t.Error("expected at least one false statement in 50 draws")
	}
}

func TestShortAnswerTermsByDifficulty(t *testing.T) {
	tests := []struct {
		sentence   string
		level      string
		want       []string
		wantPrefix string
	}{
		{
			"Photosynthesis will convert light energy to chemical energy", quiz.Beginner,
			[]string{"photosynthesis", "chemical", "convert"},
			"Explain the meaning and implications of: '",
		},
		{
			"Photosynthesis will convert light energy to chemical energy", quiz.Intermediate,
			[]string{"photosynthesis", "chemical", "convert", "energy"},
			"Explain the meaning and implications of: '",
		},
		{
			"Photosynthesis will convert light energy to chemical energy", quiz.Expert,
			[]string{"photosynthesis", "chemical", "convert", "energy", "light"},
			"Explain the meaning and implications of: '",
		},
		{
			"Cells divide often", quiz.Expert,
			[]string{"divide", "cells", "often", "concept", "analysis"},
			"Describe the concept mentioned in: '",
		},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.sentence, func(t *testing.T) {
			q := shortAnswer(tt.sentence, tt.level)
			if strings.Join(q.KeyTerms, ",") != strings.Join(tt.want, ",") {
				t.Errorf("key terms = %v, want %v", q.KeyTerms, tt.want)
			}
			if !strings.HasPrefix(q.Prompt, tt.wantPrefix) {
				t.Errorf("prompt = %q", q.Prompt)
			}
		})
	}
}

func TestLocalGenerator_NoUsableSentences(t *testing.T) {
	qs, err := newTestLocal().Generate(context.Background(), Request{
		Notes: "tiny", Mode: "fill-blank", Difficulty: quiz.Beginner, Count: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, q := range qs {
		if q.Prompt != genericQuestion(quiz.FillBlank).Prompt {
			t.Errorf("expected generic question, got %q", q.Prompt)
		}
	}
}

func TestLocalGenerator_InvalidRequest(t *testing.T) {
	_, err := newTestLocal().Generate(context.Background(), Request{Notes: "x", Mode: "essay"})
	var gerr *GenerationError
	if !errors.As(err, &gerr) || gerr.Stage != StageRequest {
		t.Fatalf("expected request GenerationError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest in chain")
	}
}

func TestNegate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Water is wet", "Water is not wet"},
		{"Cats are not reptiles", "Cats are reptiles"},
		{"Fish do not fly", "Fish do fly"},
		{"Birds fly south", "Birds fly south"},
	}
	for _, tt := range tests {
		if got := negate(tt.in); got != tt.want {
			t.Errorf("negate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
