package questionbank

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
)

const (
	questionsSheet = "Questions"
	infoSheet      = "Info"
)

var sheetHeaders = []string{
	"Type", "Question", "Option A", "Option B", "Option C", "Option D",
	"Correct Answer", "Key Terms",
}

var optionLetters = []string{"A", "B", "C", "D"}

func encodeXLSX(b *Bank) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(questionsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	rows := [][]string{sheetHeaders}
	for _, q := range b.Questions {
		rows = append(rows, questionRow(q))
	}
	if err := writeRows(f, questionsSheet, rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(infoSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	info := [][]string{{"Mode", b.Mode}, {"Difficulty", b.Difficulty}}
	if err := writeRows(f, infoSheet, info); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func questionRow(q quiz.Question) []string {
	row := make([]string, len(sheetHeaders))
	row[0] = string(q.Type)
	row[1] = q.Prompt
	switch q.Type {
	case quiz.MultipleChoice:
		for i, opt := range q.Options {
			if i < len(optionLetters) {
				row[2+i] = opt
			}
		}
		if q.CorrectIndex != nil && *q.CorrectIndex >= 0 && *q.CorrectIndex < len(optionLetters) {
			row[6] = optionLetters[*q.CorrectIndex]
		}
	case quiz.TrueFalse:
		if q.CorrectBool != nil {
			row[6] = fmt.Sprint(*q.CorrectBool)
		}
	case quiz.FillBlank:
		if q.CorrectText != nil {
			row[6] = *q.CorrectText
		}
	case quiz.ShortAnswer:
		row[7] = strings.Join(q.KeyTerms, ", ")
	}
	return row
}

func decodeXLSX(data []byte) (*Bank, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", ErrInvalidBank, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: Excel file has no sheets", ErrInvalidBank)
	}
	sheet := sheets[0]
	if idx, _ := f.GetSheetIndex(questionsSheet); idx >= 0 {
		sheet = questionsSheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read Excel rows: %v", ErrInvalidBank, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: Excel must have header row and at least one data row", ErrInvalidBank)
	}

	col := make(map[string]int)
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"type", "question"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", ErrInvalidBank, required)
		}
	}

	b := &Bank{}
	for n, row := range rows[1:] {
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if get("type") == "" && get("question") == "" {
			continue
		}
		q, err := parseRow(get)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidBank, n+2, err)
		}
		b.Questions = append(b.Questions, q)
	}

	if idx, _ := f.GetSheetIndex(infoSheet); idx >= 0 {
		info, err := f.GetRows(infoSheet)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read Info sheet: %v", ErrInvalidBank, err)
		}
		for _, row := range info {
			if len(row) < 2 {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(row[0])) {
			case "mode":
				b.Mode = strings.TrimSpace(row[1])
			case "difficulty":
				b.Difficulty = strings.TrimSpace(row[1])
			}
		}
	}

	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func parseRow(get func(string) string) (quiz.Question, error) {
	prompt := get("question")
	answer := get("correct answer")

	switch t := quiz.Type(strings.ToLower(get("type"))); t {
	case quiz.MultipleChoice:
		var opts []string
		for _, l := range optionLetters {
			if o := get("option " + strings.ToLower(l)); o != "" {
				opts = append(opts, o)
			}
		}
		for i, l := range optionLetters {
			if strings.EqualFold(answer, l) {
				return quiz.NewMultipleChoice(prompt, opts, i), nil
			}
		}
		return quiz.Question{}, fmt.Errorf("correct answer must be a letter A-D, got %q", answer)
	case quiz.TrueFalse:
		b, ok := parseBool(answer)
		if !ok {
			return quiz.Question{}, fmt.Errorf("true-false answer must be true or false, got %q", answer)
		}
		return quiz.NewTrueFalse(prompt, b), nil
	case quiz.FillBlank:
		return quiz.NewFillBlank(prompt, answer), nil
	case quiz.ShortAnswer:
		var terms []string
		for _, term := range strings.Split(get("key terms"), ",") {
			if term = strings.TrimSpace(term); term != "" {
				terms = append(terms, term)
			}
		}
		return quiz.NewShortAnswer(prompt, terms...), nil
	default:
		return quiz.Question{}, fmt.Errorf("unknown question type %q", t)
	}
}
