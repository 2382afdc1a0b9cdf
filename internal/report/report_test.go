package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/studybuddy/internal/extract"
	"github.com/abhisek/studybuddy/internal/quiz"
)

var testNow = time.Date(2026, 3, 7, 14, 5, 0, 0, time.UTC)

func sampleSummary() quiz.Summary {
	qs := []quiz.Question{
		quiz.NewMultipleChoice("What do mitochondria release?", []string{"Energy", "Light", "Water", "Salt"}, 0),
		quiz.NewTrueFalse("True or False: Viruses are cells.", false),
		quiz.NewFillBlank("Plants make food through _____.", "photosynthesis"),
	}
	answers := []quiz.Answer{quiz.ChoiceAnswer(0), quiz.BoolAnswer(true), quiz.NoAnswer()}
	return quiz.Summarize(qs, answers, quiz.ModeRandom, quiz.Intermediate)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"pdf", FormatPDF, false},
		{"XLSX", FormatXLSX, false},
		{"text", FormatText, false},
		{"out/results.txt", FormatText, false},
		{"report.PDF", FormatPDF, false},
		{"csv", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "StudyBuddy_Results_2026-03-07.pdf", FileName(FormatPDF, testNow))
	assert.Equal(t, "StudyBuddy_Results_2026-03-07.xlsx", FileName(FormatXLSX, testNow))
}

func TestPDF_Content(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePDF(&buf, sampleSummary(), testNow, false))

	text, err := extract.Bytes("report.pdf", buf.Bytes())
	require.NoError(t, err)

	for _, want := range []string{
		"Study Buddy - Practice Results",
		"Practice Mode: Random Mode",
		"Difficulty Level: Intermediate",
		"Score: 33% (1/3)",
		"Question 1: What do mitochondria release?",
		"Your Answer: Energy",
		"Result: Correct",
		"Your Answer: Not answered",
		"Correct Answer: photosynthesis",
		"Result: Incorrect",
		"Generated on March 7, 2026 at 2:05 PM",
	} {
		assert.Contains(t, text, want)
	}
}

func TestPDF_PageBreaks(t *testing.T) {
	var qs []quiz.Question
	for i := range 30 {
		qs = append(qs, quiz.NewTrueFalse(fmt.Sprintf("Statement %d", i), true))
	}
	s := quiz.Summarize(qs, nil, string(quiz.TrueFalse), quiz.Beginner)

	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, s, testNow))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	r, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	// 26mm per question from y=78 with a break past 270mm.
	assert.Equal(t, 4, r.NumPage())
}

func TestPDF_LongAnswersWrap(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("osmosis moves water across a membrane ", 20)) + " towards solutes"
	qs := []quiz.Question{quiz.NewShortAnswer("Explain osmosis.", "water")}
	s := quiz.Summarize(qs, []quiz.Answer{quiz.TextAnswer(long)}, string(quiz.ShortAnswer), quiz.Expert)

	var buf bytes.Buffer
	require.NoError(t, writePDF(&buf, s, testNow, false))
	text, err := extract.Bytes("report.pdf", buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, text, "Your Answer: osmosis")
	assert.Contains(t, text, "solutes")

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 10)
	lines := wrapLines(doc, "Your Answer: "+long, answerWidth)
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, doc.GetStringWidth(line), answerWidth, "line %q", line)
	}
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, sampleSummary()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 8)

	assert.Equal(t, []string{"Practice Mode", "Random Mode"}, rows[0])
	assert.Equal(t, []string{"Score", "33% (1/3)"}, rows[2])
	assert.Equal(t, resultHeaders, rows[4])
	assert.Equal(t, []string{"1", "Multiple Choice", "What do mitochondria release?", "Energy", "Energy", "Correct"}, rows[5])
	assert.Equal(t, []string{"2", "True/False", "True or False: Viruses are cells.", "True", "False", "Incorrect"}, rows[6])
	assert.Equal(t, "Not answered", rows[7][3])
}

func TestWrite(t *testing.T) {
	s := sampleSummary()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, s, testNow))
	assert.Equal(t, s.Text(), buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, FormatXLSX, s, testNow))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))

	assert.Error(t, Write(&buf, Format("csv"), s, testNow))
}
