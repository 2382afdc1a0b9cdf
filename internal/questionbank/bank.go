// Package questionbank saves generated question sets to YAML, JSON or XLSX
// files and loads them back for offline practice.
package questionbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// ErrInvalidBank wraps every load failure caused by the file's content.
var ErrInvalidBank = errors.New("invalid question bank")

// Format is a bank file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported question bank file %q (want .yaml, .json or .xlsx)", filepath.Base(path))
}

// Bank is a saved question set.
type Bank struct {
	Mode       string
	Difficulty string
	Questions  []quiz.Question
}

// document is the on-disk layout shared by YAML and JSON.
type document struct {
	Mode       string  `json:"mode,omitempty" yaml:"mode,omitempty"`
	Difficulty string  `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Questions  []entry `json:"questions" yaml:"questions"`
}

type entry struct {
	Type               string   `json:"type" yaml:"type"`
	Question           string   `json:"question" yaml:"question"`
	Options            []string `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex,omitempty" yaml:"correctAnswerIndex,omitempty"`
	CorrectAnswer      any      `json:"correctAnswer,omitempty" yaml:"correctAnswer,omitempty"`
	KeyTerms           []string `json:"keyTerms,omitempty" yaml:"keyTerms,omitempty"`
}

func toEntry(q quiz.Question) entry {
	e := entry{Type: string(q.Type), Question: q.Prompt}
	switch q.Type {
	case quiz.MultipleChoice:
		e.Options = q.Options
		e.CorrectAnswerIndex = q.CorrectIndex
	case quiz.TrueFalse:
		if q.CorrectBool != nil {
			e.CorrectAnswer = *q.CorrectBool
		}
	case quiz.FillBlank:
		if q.CorrectText != nil {
			e.CorrectAnswer = *q.CorrectText
		}
	case quiz.ShortAnswer:
		e.KeyTerms = q.KeyTerms
	}
	return e
}

// question converts an entry decoded from JSON. A correct answer of the
// wrong kind is an error here, where the service wire format drops it.
func (e entry) question() (quiz.Question, error) {
	switch quiz.Type(e.Type) {
	case quiz.MultipleChoice:
		if e.CorrectAnswerIndex == nil {
			return quiz.Question{}, errors.New("multiple-choice question needs correctAnswerIndex")
		}
		return quiz.NewMultipleChoice(e.Question, e.Options, *e.CorrectAnswerIndex), nil
	case quiz.TrueFalse:
		switch v := e.CorrectAnswer.(type) {
		case bool:
			return quiz.NewTrueFalse(e.Question, v), nil
		case string:
			if b, ok := parseBool(v); ok {
				return quiz.NewTrueFalse(e.Question, b), nil
			}
		}
		return quiz.Question{}, fmt.Errorf("true-false answer must be true or false, got %v", e.CorrectAnswer)
	case quiz.FillBlank:
		switch v := e.CorrectAnswer.(type) {
		case string:
			return quiz.NewFillBlank(e.Question, v), nil
		case float64:
			// YAML and JSON both read an unquoted 100 as a number.
			return quiz.NewFillBlank(e.Question, fmt.Sprint(v)), nil
		}
		return quiz.Question{}, fmt.Errorf("fill-blank answer must be text, got %v", e.CorrectAnswer)
	case quiz.ShortAnswer:
		return quiz.NewShortAnswer(e.Question, e.KeyTerms...), nil
	}
	return quiz.Question{}, fmt.Errorf("unknown question type %q", e.Type)
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes":
		return true, true
	case "false", "f", "no":
		return false, true
	}
	return false, false
}

// fromDocument validates raw against the bank schema and converts it.
func fromDocument(raw []byte) (*Bank, error) {
	if err := validateDocument(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	b := &Bank{Mode: doc.Mode, Difficulty: doc.Difficulty}
	for i, e := range doc.Questions {
		q, err := e.question()
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalidBank, i+1, err)
		}
		b.Questions = append(b.Questions, q)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bank) toDocument() document {
	doc := document{Mode: b.Mode, Difficulty: b.Difficulty, Questions: make([]entry, 0, len(b.Questions))}
	for _, q := range b.Questions {
		doc.Questions = append(doc.Questions, toEntry(q))
	}
	return doc
}

// validate checks the bank as a whole after decoding.
func (b *Bank) validate() error {
	if len(b.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidBank)
	}
	if b.Mode != "" && !quiz.ValidMode(b.Mode) {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidBank, b.Mode)
	}
	if b.Difficulty != "" && !quiz.ValidDifficulty(b.Difficulty) {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidBank, b.Difficulty)
	}
	for i, q := range b.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("%w: question %d: %v", ErrInvalidBank, i+1, err)
		}
	}
	return nil
}

// Load reads a bank file, choosing the format from its extension.
func Load(path string) (*Bank, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return Decode(data, format)
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*Bank, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON:
		return fromDocument(data)
	case FormatXLSX:
		return decodeXLSX(data)
	}
	return nil, fmt.Errorf("unsupported question bank format %q", format)
}

// Save writes b to path, choosing the format from its extension.
func Save(path string, b *Bank) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(b, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write question bank: %w", err)
	}
	return nil
}

// Encode renders b in the given format.
func Encode(b *Bank, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return encodeYAML(b)
	case FormatJSON:
		data, err := json.MarshalIndent(b.toDocument(), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatXLSX:
		return encodeXLSX(b)
	}
	return nil, fmt.Errorf("unsupported question bank format %q", format)
}
