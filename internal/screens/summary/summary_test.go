package summary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/report"
	"github.com/abhisek/studybuddy/internal/router"
)

func testSummary() quiz.Summary {
	qs := []quiz.Question{
		quiz.NewMultipleChoice("Which organelle releases energy from glucose?",
			[]string{"Nucleus", "Mitochondria", "Ribosome", "Vacuole"}, 1),
		quiz.NewTrueFalse("True or False: Chloroplasts are found in animal cells.", false),
		quiz.NewFillBlank("Plants convert light energy into ________ energy.", "chemical"),
	}
	answers := []quiz.Answer{quiz.ChoiceAnswer(1), quiz.BoolAnswer(true), quiz.NoAnswer()}
	return quiz.Summarize(qs, answers, quiz.ModeRandom, quiz.Intermediate)
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestExportKey(t *testing.T) {
	tests := []struct {
		key  string
		want report.Format
		ok   bool
	}{
		{"p", report.FormatPDF, true},
		{"x", report.FormatXLSX, true},
		{"s", report.FormatText, true},
		{"q", "", false},
	}
	for _, tt := range tests {
		got, ok := ExportKey(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ExportKey(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExport_WritesDatedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	path, err := Export(dir, report.FormatText, testSummary(), now)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Base(path) != "StudyBuddy_Results_2026-03-14.txt" {
		t.Errorf("file name = %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != testSummary().Text() {
		t.Errorf("exported text does not match Summary.Text():\n%s", data)
	}
}

func TestSummaryScreen_View(t *testing.T) {
	s := New(testSummary(), time.Time{}, t.TempDir())
	view := s.View(100, 40)

	for _, want := range []string{"Score: 33% (1/3)", "Random Mode", "Intermediate", "Not answered", "Mitochondria"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_ScrollClamps(t *testing.T) {
	s := New(testSummary(), time.Time{}, t.TempDir())

	s.Update(specialKey(tea.KeyUp))
	if s.review.Offset != 0 {
		t.Errorf("offset after up at top = %d", s.review.Offset)
	}
	for range 5 {
		s.Update(specialKey(tea.KeyDown))
	}
	if s.review.Offset != 2 {
		t.Errorf("offset after scrolling past end = %d, want 2", s.review.Offset)
	}
}

func TestSummaryScreen_ExportAndBack(t *testing.T) {
	dir := t.TempDir()
	s := New(testSummary(), time.Time{}, dir)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }

	_, cmd := s.Update(keyPress('s'))
	if cmd == nil {
		t.Fatal("expected an export command")
	}
	msg, ok := cmd().(ExportedMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("export msg = %#v", msg)
	}
	s.Update(msg)
	if !strings.Contains(s.View(100, 40), "StudyBuddy_Results_2026-01-02.txt") {
		t.Error("expected saved path in view")
	}

	_, cmd = s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
