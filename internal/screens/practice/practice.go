// Package practice is the interactive practice round: choosing notes and
// settings, answering the generated questions and reviewing the score.
package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/events"
	"github.com/abhisek/studybuddy/internal/extract"
	"github.com/abhisek/studybuddy/internal/persist"
	"github.com/abhisek/studybuddy/internal/questiongen"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/history"
	"github.com/abhisek/studybuddy/internal/screens/summary"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/components"
)

// DefaultCount is the question count offered when nothing was restored.
const DefaultCount = 5

// Options wires a PracticeScreen to its collaborators. Only Generator is
// required.
type Options struct {
	Generator questiongen.Generator

	// Gateway restores the last configuration and saves every change.
	Gateway *persist.Gateway

	// Bus receives session.started and result.recorded events.
	Bus *events.Bus

	// Results enables jumping to the history screen after a round.
	Results store.ResultRepo

	// ExportDir is where reports are written. Defaults to ".".
	ExportDir string

	// Notes and Mode preset the configuration, for example from a question
	// bank. Preset notes are not persisted.
	Notes string
	Mode  string

	Logger *slog.Logger
	Now    func() time.Time
}

// field is a focusable row of the setup form.
type field int

const (
	fieldFile field = iota
	fieldPaste
	fieldMode
	fieldDifficulty
	fieldCount
	fieldStart
	numFields
)

// PracticeScreen drives a session.Session from key presses.
type PracticeScreen struct {
	opts   Options
	logger *slog.Logger
	sess   session.Session

	// Setup form.
	focus       field
	fileInput   components.TextInput
	pasteInput  components.TextInput
	countInput  components.TextInput
	notesSource string

	// busy is set while an extraction or generation request is in flight.
	busy      bool
	spinner   int
	inlineErr string
	alert     string

	// Answering widgets, rebuilt whenever the cursor moves.
	choice    components.Choice
	textInput components.TextInput

	review   summary.Review
	exported summary.ExportedMsg
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)
var _ screen.EscapeHandler = (*PracticeScreen)(nil)

// New creates a PracticeScreen, restoring the previous configuration when a
// gateway is configured.
func New(opts Options) *PracticeScreen {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	var restored persist.Restored
	if opts.Gateway != nil {
		restored = opts.Gateway.RestoreAll(context.Background())
	}

	cfg := session.Config{
		Notes:      restored.Notes,
		Mode:       restored.Mode,
		Difficulty: restored.Difficulty,
		Count:      restored.Count,
	}
	if !quiz.ValidMode(cfg.Mode) {
		cfg.Mode = ""
	}
	if !quiz.ValidDifficulty(cfg.Difficulty) {
		cfg.Difficulty = ""
	}
	if cfg.Count <= 0 {
		cfg.Count = DefaultCount
	}
	if opts.Notes != "" {
		cfg.Notes = opts.Notes
	}
	if opts.Mode != "" {
		cfg.Mode = opts.Mode
	}

	s := &PracticeScreen{
		opts:       opts,
		logger:     opts.Logger.With("component", "practice"),
		sess:       session.New(cfg),
		fileInput:  components.NewTextInput("path/to/notes.pdf", false, 0),
		pasteInput: components.NewTextInput("or paste notes here", false, 0),
		countInput: components.NewTextInput("5", true, 3),
	}
	s.resetSetupInputs()
	if !restored.Empty() && opts.Notes == "" {
		s.logger.Info("restored previous configuration", "mode", cfg.Mode, "difficulty", cfg.Difficulty, "count", cfg.Count)
	}
	return s
}

// resetSetupInputs mirrors the session config into the form.
func (s *PracticeScreen) resetSetupInputs() {
	cfg := s.sess.Config
	switch {
	case s.opts.Notes != "":
		s.notesSource = s.opts.Notes
	case cfg.Notes != "":
		s.notesSource = "restored notes"
	default:
		s.notesSource = ""
	}
	s.countInput.SetValue(strconv.Itoa(cfg.Count))
	s.focus = fieldFile
	if cfg.Notes != "" {
		s.focus = fieldStart
	}
	s.applyFocus()
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.applyFocus()
}

func (s *PracticeScreen) Title() string {
	switch s.sess.Phase {
	case session.PhaseAnswering:
		return "Practice"
	case session.PhaseReviewing:
		return "Results"
	}
	return "New Practice"
}

// Status shows the question position while answering.
func (s *PracticeScreen) Status() string {
	switch s.sess.Phase {
	case session.PhaseAnswering:
		return fmt.Sprintf("%d/%d  ", s.sess.Current+1, len(s.sess.Questions))
	case session.PhaseReviewing:
		return s.review.Summary.ScoreLine() + "  "
	}
	return ""
}

// CapturesEscape keeps Esc inside the screen while a dialog is open or a
// round is in progress.
func (s *PracticeScreen) CapturesEscape() bool {
	return s.alert != "" || s.sess.Phase == session.PhaseAnswering || s.sess.Phase == session.PhaseGenerating
}

// Session returns the current state machine value.
func (s *PracticeScreen) Session() session.Session {
	return s.sess
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		return s, s.handleNotesLoaded(msg)

	case questionsReadyMsg:
		return s, s.handleQuestionsReady(msg)

	case spinnerTickMsg:
		if !s.busy {
			return s, nil
		}
		s.spinner++
		return s, spinnerTick()

	case publishedMsg:
		if msg.Err != nil {
			s.logger.Warn("publish failed", "topic", msg.Topic, "error", msg.Err)
		}
		return s, nil

	case summary.ExportedMsg:
		s.exported = msg
		if msg.Err != nil {
			s.logger.Error("export failed", "error", msg.Err)
		} else {
			s.logger.Info("exported results", "path", msg.Path)
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.alert != "" {
			switch msg.String() {
			case "enter", "esc", "space":
				s.alert = ""
			}
			return s, nil
		}
		switch s.sess.Phase {
		case session.PhaseConfiguring:
			return s, s.handleSetupKey(msg)
		case session.PhaseAnswering:
			return s, s.handleAnswerKey(msg)
		case session.PhaseReviewing:
			return s, s.handleReviewKey(msg)
		}
		return s, nil
	}

	// Cursor blink and other bubbles messages go to the focused input.
	return s, s.forwardToInput(msg)
}

func (s *PracticeScreen) forwardToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case s.sess.Phase == session.PhaseConfiguring && s.focus == fieldFile:
		s.fileInput, cmd, _ = s.fileInput.Update(msg)
	case s.sess.Phase == session.PhaseConfiguring && s.focus == fieldPaste:
		s.pasteInput, cmd, _ = s.pasteInput.Update(msg)
	case s.sess.Phase == session.PhaseConfiguring && s.focus == fieldCount:
		s.countInput, cmd, _ = s.countInput.Update(msg)
	case s.sess.Phase == session.PhaseAnswering && s.textQuestion():
		s.textInput, cmd, _ = s.textInput.Update(msg)
	}
	return cmd
}

// apply runs c through the state machine, keeping the old state on error.
func (s *PracticeScreen) apply(c session.Command) error {
	next, err := session.Apply(s.sess, c)
	if err != nil {
		s.logger.Debug("command rejected", "command", fmt.Sprintf("%T", c), "phase", s.sess.Phase, "error", err)
		return err
	}
	s.sess = next
	return nil
}

// saveConfig persists the form. Preset notes from a question bank are not
// written.
func (s *PracticeScreen) saveConfig() {
	if s.opts.Gateway == nil || s.opts.Notes != "" {
		return
	}
	cfg := s.sess.Config
	s.opts.Gateway.SaveConfig(context.Background(), persist.Restored{
		Notes:      cfg.Notes,
		Mode:       cfg.Mode,
		Difficulty: cfg.Difficulty,
		Count:      cfg.Count,
	})
}

func (s *PracticeScreen) loadNotes(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := extract.File(path)
		return notesLoadedMsg{Name: filepath.Base(path), Text: text, Err: err}
	}
}

func (s *PracticeScreen) handleNotesLoaded(msg notesLoadedMsg) tea.Cmd {
	s.busy = false
	if msg.Err != nil {
		s.inlineErr = inputErrorMessage(msg.Err)
		s.logger.Warn("notes extraction failed", "file", msg.Name, "error", msg.Err)
		return nil
	}
	if err := s.apply(session.SetNotes{Text: msg.Text}); err != nil {
		return nil
	}
	s.inlineErr = ""
	s.notesSource = msg.Name
	s.pasteInput.SetValue("")
	s.saveConfig()
	s.logger.Info("notes loaded", "file", msg.Name, "chars", len(msg.Text))
	return s.setFocus(fieldStart)
}

// inputErrorMessage turns extraction failures into the inline message.
func inputErrorMessage(err error) string {
	var exErr *extract.ExtractionError
	switch {
	case errors.Is(err, extract.ErrNoFile) && err != extract.ErrNoFile:
		return "File not found. Check the path and try again."
	case errors.Is(err, extract.ErrNoFile):
		return "Please select a file first."
	case errors.Is(err, extract.ErrUnsupported):
		return err.Error()
	case errors.As(err, &exErr):
		return fmt.Sprintf("Could not read %s. Try a different file or paste the notes instead.", exErr.Name)
	}
	return err.Error()
}

func (s *PracticeScreen) startGeneration() tea.Cmd {
	if s.busy {
		return nil
	}
	if err := s.apply(session.StartGeneration{}); err != nil {
		s.inlineErr = err.Error()
		return nil
	}
	s.inlineErr = ""
	s.busy = true
	s.spinner = 0

	cfg := s.sess.Config
	gen := s.opts.Generator
	req := questiongen.Request{
		Notes:      cfg.Notes,
		Mode:       cfg.Mode,
		Difficulty: cfg.Difficulty,
		Count:      min(cfg.Count, questiongen.MaxCount),
	}
	s.logger.Info("generating questions", "mode", req.Mode, "difficulty", req.Difficulty, "count", req.Count)

	return tea.Batch(func() tea.Msg {
		qs, err := gen.Generate(context.Background(), req)
		return questionsReadyMsg{Questions: qs, Err: err}
	}, spinnerTick())
}

func (s *PracticeScreen) handleQuestionsReady(msg questionsReadyMsg) tea.Cmd {
	s.busy = false
	if s.sess.Phase != session.PhaseGenerating {
		return nil
	}

	var cmd session.Command = session.GenerationSucceeded{Questions: msg.Questions}
	if msg.Err != nil {
		cmd = session.GenerationFailed{Err: msg.Err}
	}
	if err := s.apply(cmd); err != nil {
		return nil
	}

	if s.sess.Phase != session.PhaseAnswering {
		s.alert = "Could not generate questions: " + s.sess.Err.Error()
		s.logger.Error("question generation failed", "error", s.sess.Err)
		return s.setFocus(fieldStart)
	}

	s.logger.Info("practice started", "session_id", s.sess.ID, "questions", len(s.sess.Questions))
	return tea.Batch(s.syncAnswerWidgets(), s.publish(events.TopicSessionStarted, events.SessionStarted{
		SessionID:  s.sess.ID,
		Mode:       s.sess.Config.Mode,
		Difficulty: s.sess.Config.Difficulty,
		Questions:  len(s.sess.Questions),
		Timestamp:  s.opts.Now(),
	}))
}

// enterReview scores the finished round and records it.
func (s *PracticeScreen) enterReview() tea.Cmd {
	sum := s.sess.Summary()
	s.review = summary.Review{Summary: sum}
	s.exported = summary.ExportedMsg{}
	s.logger.Info("practice finished", "session_id", s.sess.ID, "score", sum.Score, "correct", sum.CorrectCount, "total", sum.Total)
	return s.publish(events.TopicResultRecorded, events.ResultRecorded{
		SessionID: s.sess.ID,
		Summary:   sum,
		Timestamp: s.opts.Now(),
	})
}

func (s *PracticeScreen) publish(topic string, payload any) tea.Cmd {
	bus := s.opts.Bus
	if bus == nil {
		return nil
	}
	return func() tea.Msg {
		return publishedMsg{Topic: topic, Err: bus.Publish(context.Background(), topic, payload)}
	}
}

func (s *PracticeScreen) handleReviewKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "up", "k":
		s.review.ScrollUp()
		return nil
	case "down", "j":
		s.review.ScrollDown()
		return nil
	case "n":
		if err := s.apply(session.NewPractice{}); err != nil {
			return nil
		}
		s.resetSetupInputs()
		return s.applyFocus()
	case "h":
		if s.opts.Results == nil {
			return nil
		}
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: history.New(s.opts.Results, s.opts.ExportDir)}
		}
	case "t":
		return screen.ToggleTheme
	}
	if f, ok := summary.ExportKey(key); ok {
		return summary.ExportCmd(s.opts.ExportDir, f, s.review.Summary, s.opts.Now())
	}
	return nil
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
