package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
)

// SheetName is the worksheet holding the review.
const SheetName = "Results"

var resultHeaders = []string{"#", "Type", "Question", "Your Answer", "Correct Answer", "Result"}

// XLSX writes the review as a workbook with a single "Results" sheet: the
// mode, difficulty and score at the top, then one row per question.
func XLSX(w io.Writer, s quiz.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	rows := [][]any{
		{"Practice Mode", quiz.ModeLabel(s.Mode)},
		{"Difficulty Level", quiz.DifficultyLabel(s.Difficulty)},
		{"Score", s.ScoreLine()},
		{},
		toAny(resultHeaders),
	}
	for _, it := range s.Items {
		rows = append(rows, []any{
			it.Number,
			quiz.ModeLabel(string(it.Type)),
			it.Prompt,
			it.UserAnswer,
			it.CorrectAnswer,
			it.ResultLabel(),
		})
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("failed to set %s: %w", cell, err)
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 5, 5, bold); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}
	if err := f.SetColWidth(SheetName, "C", "E", 40); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
