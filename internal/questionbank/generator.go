package questionbank

import (
	"context"
	"math/rand/v2"

	"github.com/abhisek/studybuddy/internal/questiongen"
	"github.com/abhisek/studybuddy/internal/quiz"
)

// Generator serves questions from a bank instead of generating them. The
// notes in a request are ignored.
type Generator struct {
	bank    *Bank
	shuffle bool
}

// NewGenerator creates a Generator over b. With shuffle set each round
// draws the bank's questions in a new order.
func NewGenerator(b *Bank, shuffle bool) *Generator {
	return &Generator{bank: b, shuffle: shuffle}
}

// Generate returns up to req.Count bank questions of the requested mode.
func (g *Generator) Generate(_ context.Context, req questiongen.Request) ([]quiz.Question, error) {
	var pool []quiz.Question
	for _, q := range g.bank.Questions {
		if req.Mode == "" || req.Mode == quiz.ModeRandom || string(q.Type) == req.Mode {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		return nil, &questiongen.GenerationError{Stage: questiongen.StageRequest, Err: questiongen.ErrNoQuestions}
	}

	if g.shuffle {
		rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	}
	if req.Count > 0 && req.Count < len(pool) {
		pool = pool[:req.Count]
	}
	return pool, nil
}
