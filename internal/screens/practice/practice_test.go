package practice

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/abhisek/studybuddy/internal/events"
	"github.com/abhisek/studybuddy/internal/persist"
	"github.com/abhisek/studybuddy/internal/questiongen"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/summary"
	"github.com/abhisek/studybuddy/internal/session"
)

type stubGenerator struct {
	questions []quiz.Question
	err       error
	requests  []questiongen.Request
}

func (g *stubGenerator) Generate(_ context.Context, req questiongen.Request) ([]quiz.Question, error) {
	g.requests = append(g.requests, req)
	return g.questions, g.err
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func shiftTab() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
}

func press(s *PracticeScreen, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

func typeText(s *PracticeScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

// collect runs cmd and any batched commands, skipping timer ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if _, ok := msg.(spinnerTickMsg); ok {
		return nil
	}
	return []tea.Msg{msg}
}

func sampleQuestions() []quiz.Question {
	return []quiz.Question{
		quiz.NewMultipleChoice("Which organelle releases energy from glucose?",
			[]string{"Nucleus", "Mitochondria", "Ribosome", "Vacuole"}, 1),
		quiz.NewTrueFalse("True or False: Photosynthesis happens in chloroplasts.", true),
		quiz.NewFillBlank("Plants convert light energy into ________ energy.", "chemical"),
		quiz.NewShortAnswer("What does cellular respiration produce?", "energy", "carbon dioxide"),
	}
}

// answering starts a round with the sample questions.
func answering(t *testing.T, opts Options) *PracticeScreen {
	t.Helper()
	if opts.Generator == nil {
		opts.Generator = &stubGenerator{questions: sampleQuestions()}
	}
	if opts.Notes == "" {
		opts.Notes = "Question bank biology.yaml"
	}
	if opts.Mode == "" {
		opts.Mode = quiz.ModeRandom
	}
	s := New(opts)
	s.setFocus(fieldDifficulty)
	press(s, specialKey(tea.KeyRight))
	s.setFocus(fieldStart)

	for _, msg := range collect(press(s, specialKey(tea.KeyEnter))) {
		s.Update(msg)
	}
	if s.sess.Phase != session.PhaseAnswering {
		t.Fatalf("phase = %s, want answering (err %v, inline %q)", s.sess.Phase, s.sess.Err, s.inlineErr)
	}
	return s
}

func TestNew_RestoresSavedConfig(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	gw := persist.NewGateway(persist.NewMemoryKV(), nil, persist.WithClock(func() time.Time { return now }))
	gw.SaveConfig(context.Background(), persist.Restored{
		Notes: "Cells are the unit of life.", Mode: "fill-blank", Difficulty: "expert", Count: 8,
	})

	s := New(Options{Generator: &stubGenerator{}, Gateway: gw})
	cfg := s.Session().Config
	if cfg.Notes != "Cells are the unit of life." || cfg.Mode != "fill-blank" || cfg.Difficulty != "expert" || cfg.Count != 8 {
		t.Errorf("restored config = %+v", cfg)
	}
	if s.focus != fieldStart {
		t.Errorf("focus = %d, want start button", s.focus)
	}
	if got := s.countInput.Value(); got != "8" {
		t.Errorf("count input = %q", got)
	}
}

func TestNew_DefaultsWithoutGateway(t *testing.T) {
	s := New(Options{Generator: &stubGenerator{}})
	cfg := s.Session().Config
	if cfg.Notes != "" || cfg.Mode != "" || cfg.Difficulty != "" || cfg.Count != DefaultCount {
		t.Errorf("config = %+v", cfg)
	}
	if s.focus != fieldFile {
		t.Errorf("focus = %d, want notes file", s.focus)
	}
}

func TestSetup_SelectorsPersist(t *testing.T) {
	kv := persist.NewMemoryKV()
	s := New(Options{Generator: &stubGenerator{}, Gateway: persist.NewGateway(kv, nil)})

	s.setFocus(fieldMode)
	press(s, specialKey(tea.KeyRight), specialKey(tea.KeyRight))
	if got := s.Session().Config.Mode; got != "true-false" {
		t.Errorf("mode = %q, want true-false", got)
	}
	press(s, specialKey(tea.KeyLeft), specialKey(tea.KeyLeft))
	if got := s.Session().Config.Mode; got != quiz.ModeRandom {
		t.Errorf("mode after wrapping back = %q, want random", got)
	}

	press(s, specialKey(tea.KeyTab), specialKey(tea.KeyLeft))
	if got := s.Session().Config.Difficulty; got != quiz.Expert {
		t.Errorf("difficulty = %q, want expert", got)
	}

	snap := kv.Snapshot()
	if snap[persist.KeyMode] != quiz.ModeRandom || snap[persist.KeyDifficulty] != quiz.Expert {
		t.Errorf("persisted = %v", snap)
	}
	if snap[persist.KeyTimestamp] == "" {
		t.Error("expected session timestamp to be stamped")
	}
}

func TestSetup_PasteNotesAndCount(t *testing.T) {
	s := New(Options{Generator: &stubGenerator{}})
	s.setFocus(fieldPaste)
	typeText(s, "Mitochondria release energy.")
	if got := s.Session().Config.Notes; got != "Mitochondria release energy." {
		t.Errorf("notes = %q", got)
	}

	s.setFocus(fieldCount)
	press(s, specialKey(tea.KeyBackspace), keyPress('x'), keyPress('1'), keyPress('2'))
	if got := s.Session().Config.Count; got != 12 {
		t.Errorf("count = %d, want 12", got)
	}
}

func TestSetup_StartRequiresCompleteConfig(t *testing.T) {
	gen := &stubGenerator{questions: sampleQuestions()}
	s := New(Options{Generator: gen, Notes: "notes"})
	s.setFocus(fieldStart)

	cmd := press(s, specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command without mode and difficulty")
	}
	if !strings.Contains(s.inlineErr, "select notes") {
		t.Errorf("inline error = %q", s.inlineErr)
	}
	if s.Session().Phase != session.PhaseConfiguring || len(gen.requests) != 0 {
		t.Error("generation must not start")
	}
}

func TestSetup_GenerationDisablesStart(t *testing.T) {
	gen := &stubGenerator{questions: sampleQuestions()}
	s := New(Options{Generator: gen, Notes: "notes", Mode: "multiple-choice"})
	s.setFocus(fieldDifficulty)
	press(s, specialKey(tea.KeyRight))
	s.setFocus(fieldStart)

	cmd := press(s, specialKey(tea.KeyEnter))
	if cmd == nil || !s.busy || s.Session().Phase != session.PhaseGenerating {
		t.Fatalf("expected generating state, got phase %s busy %v", s.Session().Phase, s.busy)
	}
	if again := press(s, specialKey(tea.KeyEnter)); again != nil {
		t.Error("start must be disabled while generating")
	}
	if !s.CapturesEscape() {
		t.Error("esc should be captured while generating")
	}

	for _, msg := range collect(cmd) {
		s.Update(msg)
	}
	if len(gen.requests) != 1 {
		t.Fatalf("generator calls = %d, want 1", len(gen.requests))
	}
	req := gen.requests[0]
	if req.Mode != "multiple-choice" || req.Difficulty != quiz.Beginner || req.Count != DefaultCount || req.Notes != "notes" {
		t.Errorf("request = %+v", req)
	}
	if s.busy || s.Session().Phase != session.PhaseAnswering {
		t.Errorf("phase %s busy %v after success", s.Session().Phase, s.busy)
	}
}

func TestSetup_GenerationFailureShowsAlert(t *testing.T) {
	gen := &stubGenerator{err: &questiongen.GenerationError{Stage: questiongen.StageRemote, Err: errors.New("service returned 502")}}
	s := New(Options{Generator: gen, Notes: "notes", Mode: "true-false"})
	s.setFocus(fieldDifficulty)
	press(s, specialKey(tea.KeyRight))
	s.setFocus(fieldStart)

	for _, msg := range collect(press(s, specialKey(tea.KeyEnter))) {
		s.Update(msg)
	}
	if s.Session().Phase != session.PhaseConfiguring {
		t.Fatalf("phase = %s, want configuring", s.Session().Phase)
	}
	if !strings.Contains(s.alert, "502") || s.busy {
		t.Errorf("alert = %q busy = %v", s.alert, s.busy)
	}
	if !strings.Contains(s.View(100, 30), "Something went wrong") {
		t.Error("expected alert dialog in view")
	}

	press(s, specialKey(tea.KeyEnter))
	if s.alert != "" {
		t.Error("enter should dismiss the alert")
	}
	if cmd := press(s, specialKey(tea.KeyEnter)); cmd == nil {
		t.Error("start should be enabled again after a failure")
	}
}

func TestSetup_EmptyQuestionSetFails(t *testing.T) {
	s := New(Options{Generator: &stubGenerator{}, Notes: "notes", Mode: "true-false"})
	s.setFocus(fieldDifficulty)
	press(s, specialKey(tea.KeyRight))
	s.setFocus(fieldStart)

	for _, msg := range collect(press(s, specialKey(tea.KeyEnter))) {
		s.Update(msg)
	}
	if !errors.Is(s.Session().Err, session.ErrNoQuestions) {
		t.Errorf("err = %v, want ErrNoQuestions", s.Session().Err)
	}
	if s.alert == "" {
		t.Error("expected alert")
	}
}

func TestSetup_LoadNotesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "biology.txt")
	if err := os.WriteFile(path, []byte("Chloroplasts capture light energy.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(Options{Generator: &stubGenerator{}})
	s.fileInput.SetValue(path)
	cmd := press(s, specialKey(tea.KeyEnter))
	if !s.busy {
		t.Error("expected busy while extracting")
	}
	for _, msg := range collect(cmd) {
		s.Update(msg)
	}

	if got := s.Session().Config.Notes; !strings.Contains(got, "Chloroplasts capture light energy.") {
		t.Errorf("notes = %q", got)
	}
	if s.notesSource != "biology.txt" || s.focus != fieldStart || s.busy {
		t.Errorf("source %q focus %d busy %v", s.notesSource, s.focus, s.busy)
	}
}

func TestSetup_LoadNotesErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty path", "", "select a file"},
		{"unsupported", "diagram.png", "unsupported file format"},
		{"missing", filepath.Join(t.TempDir(), "missing.txt"), "File not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Options{Generator: &stubGenerator{}})
			s.fileInput.SetValue(tt.path)
			for _, msg := range collect(press(s, specialKey(tea.KeyEnter))) {
				s.Update(msg)
			}
			if !strings.Contains(s.inlineErr, tt.want) {
				t.Errorf("inline error = %q, want %q", s.inlineErr, tt.want)
			}
			if s.busy {
				t.Error("control must be re-enabled")
			}
		})
	}
}

func TestAnswering_ChoiceAndNavigation(t *testing.T) {
	s := answering(t, Options{})
	if !s.CapturesEscape() {
		t.Error("esc should be captured while answering")
	}

	press(s, keyPress('b'))
	if i, ok := s.Session().Answers[0].Choice(); !ok || i != 1 {
		t.Errorf("answer 0 = %v, want choice 1", s.Session().Answers[0])
	}

	press(s, specialKey(tea.KeyTab))
	if s.Session().Current != 1 {
		t.Fatalf("current = %d, want 1", s.Session().Current)
	}
	press(s, specialKey(tea.KeyDown), specialKey(tea.KeyEnter))
	if b, ok := s.Session().Answers[1].Bool(); !ok || b {
		t.Errorf("answer 1 = %v, want false", s.Session().Answers[1])
	}

	press(s, shiftTab())
	if s.Session().Current != 0 || s.choice.Chosen != 1 {
		t.Errorf("back on question 0: current %d chosen %d", s.Session().Current, s.choice.Chosen)
	}

	press(s, specialKey(tea.KeyBackspace))
	if s.Session().Answers[0].Answered() {
		t.Error("backspace should clear the answer")
	}

	press(s, specialKey(tea.KeyLeft))
	if s.Session().Current != 0 {
		t.Error("previous at the first question must be a no-op")
	}
}

func TestAnswering_TextInput(t *testing.T) {
	s := answering(t, Options{})
	press(s, specialKey(tea.KeyTab), specialKey(tea.KeyTab))
	if !s.textQuestion() {
		t.Fatal("expected fill-blank question")
	}

	typeText(s, "chemical")
	if text, ok := s.Session().Answers[2].Text(); !ok || text != "chemical" {
		t.Errorf("answer 2 = %v", s.Session().Answers[2])
	}

	// Typed letters must not toggle the theme or navigate.
	if s.Session().Current != 2 {
		t.Errorf("current = %d after typing", s.Session().Current)
	}

	for range len("chemical") {
		press(s, specialKey(tea.KeyBackspace))
	}
	if s.Session().Answers[2].Answered() {
		t.Error("emptying the input should clear the answer")
	}

	press(s, specialKey(tea.KeyEnter))
	if s.Session().Current != 3 {
		t.Errorf("enter should advance, current = %d", s.Session().Current)
	}
}

func TestAnswering_ConfirmationGate(t *testing.T) {
	s := answering(t, Options{})
	press(s, keyPress('b'))

	press(s, ctrlKey('d'))
	if !s.Session().ConfirmPending {
		t.Fatal("expected confirmation with unanswered questions")
	}
	if !strings.Contains(s.View(100, 30), "3 unanswered") {
		t.Error("expected unanswered count in dialog")
	}

	before := s.Session()
	press(s, keyPress('n'))
	after := s.Session()
	if after.ConfirmPending || after.Phase != session.PhaseAnswering || after.Current != before.Current {
		t.Errorf("decline changed state: %+v", after)
	}

	press(s, specialKey(tea.KeyEscape))
	if !s.Session().ConfirmPending {
		t.Fatal("esc should request finish")
	}
	press(s, keyPress('y'))
	if s.Session().Phase != session.PhaseReviewing {
		t.Fatalf("phase = %s, want reviewing", s.Session().Phase)
	}
	if got := s.review.Summary.ScoreLine(); got != "25% (1/4)" {
		t.Errorf("score = %q", got)
	}
	if s.CapturesEscape() {
		t.Error("esc should return home from the review")
	}
}

func TestAnswering_AllAnsweredSkipsGate(t *testing.T) {
	s := answering(t, Options{})
	press(s, keyPress('b'), specialKey(tea.KeyTab), specialKey(tea.KeyEnter), specialKey(tea.KeyTab))
	typeText(s, "Chemical!")
	press(s, specialKey(tea.KeyTab))
	typeText(s, "it releases energy")

	press(s, ctrlKey('d'))
	if s.Session().Phase != session.PhaseReviewing {
		t.Fatalf("phase = %s, want reviewing", s.Session().Phase)
	}
	if got := s.review.Summary.Score; got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestReview_ExportAndNewPractice(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 6, 30, 8, 0, 0, 0, time.UTC)
	s := answering(t, Options{ExportDir: dir, Now: func() time.Time { return now }})
	press(s, ctrlKey('d'), keyPress('y'))

	msgs := collect(press(s, keyPress('x')))
	if len(msgs) != 1 {
		t.Fatalf("msgs = %v", msgs)
	}
	exported, ok := msgs[0].(summary.ExportedMsg)
	if !ok || exported.Err != nil {
		t.Fatalf("export = %#v", msgs[0])
	}
	if filepath.Base(exported.Path) != "StudyBuddy_Results_2026-06-30.xlsx" {
		t.Errorf("path = %q", exported.Path)
	}
	s.Update(exported)
	if !strings.Contains(s.View(120, 40), "Saved") {
		t.Error("expected saved status in view")
	}

	press(s, keyPress('n'))
	sess := s.Session()
	if sess.Phase != session.PhaseConfiguring || len(sess.Questions) != 0 || sess.Config.Mode != quiz.ModeRandom {
		t.Errorf("after new practice: %+v", sess)
	}
}

func TestEventsPublished(t *testing.T) {
	bus := events.NewBus(nil)
	got := make(chan string, 4)
	record := func(_ context.Context, msg *message.Message) error {
		got <- msg.Metadata.Get("event_type")
		if msg.Metadata.Get("event_type") == events.TopicResultRecorded {
			var ev events.ResultRecorded
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				return err
			}
			got <- ev.Summary.ScoreLine()
		}
		return nil
	}
	for _, topic := range events.Topics {
		if err := bus.Handle(t.Context(), "probe", topic, record); err != nil {
			t.Fatal(err)
		}
	}

	gen := &stubGenerator{questions: sampleQuestions()[:1]}
	s := New(Options{Generator: gen, Bus: bus, Notes: "notes", Mode: "multiple-choice"})
	s.setFocus(fieldDifficulty)
	press(s, specialKey(tea.KeyRight))
	s.setFocus(fieldStart)

	ready := collect(press(s, specialKey(tea.KeyEnter)))
	var started []tea.Msg
	for _, msg := range ready {
		started = append(started, collect(press(s, msg))...)
	}
	for _, msg := range started {
		if p, ok := msg.(publishedMsg); ok && p.Err != nil {
			t.Fatalf("publish: %v", p.Err)
		}
	}

	press(s, keyPress('b'))
	for _, msg := range collect(press(s, ctrlKey('d'))) {
		if p, ok := msg.(publishedMsg); !ok || p.Err != nil {
			t.Fatalf("publish result: %#v", msg)
		}
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
	close(got)

	var seen []string
	for v := range got {
		seen = append(seen, v)
	}
	want := []string{events.TopicSessionStarted, events.TopicResultRecorded, "100% (1/1)"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", seen, want)
	}
}

func TestThemeToggleKey(t *testing.T) {
	s := New(Options{Generator: &stubGenerator{}})
	s.setFocus(fieldMode)
	cmd := press(s, keyPress('t'))
	if cmd == nil {
		t.Fatal("expected toggle command")
	}
	if _, ok := cmd().(screen.ToggleThemeMsg); !ok {
		t.Error("expected ToggleThemeMsg")
	}

	s.setFocus(fieldPaste)
	press(s, keyPress('t'))
	if s.pasteInput.Value() != "t" {
		t.Error("t should be typed into a focused input")
	}
}
