package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/expertmaker/internal/plan"
	"github.com/abhisek/expertmaker/internal/quiz"
	"github.com/abhisek/expertmaker/internal/router"
	"github.com/abhisek/expertmaker/internal/screens/summary"
	"github.com/abhisek/expertmaker/internal/studio"
)

type fakeSubmitter struct {
	sessionID string
	mode      quiz.Mode
	responses quiz.Responses
	err       error
}

func (f *fakeSubmitter) Submit(_ context.Context, sessionID string, mode quiz.Mode, responses quiz.Responses) (*studio.Submission, error) {
	f.sessionID, f.mode, f.responses = sessionID, mode, responses
	if f.err != nil {
		return nil, f.err
	}
	return &studio.Submission{Result: quiz.Grade(nil, responses), Message: "ok"}, nil
}

func testSession() plan.Session {
	q := func(id string) quiz.Question {
		return quiz.Question{ID: id, Question: "Question " + id, Options: []string{"w", "x", "y", "z"}, AnswerIndex: 1}
	}
	return plan.Session{
		ID:         "session-oauth-1",
		TopicTitle: "OAuth",
		Quiz:       []quiz.Question{q("q1"), q("q2"), q("q3")},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestQuizScreen_Title(t *testing.T) {
	if got := New(&fakeSubmitter{}, testSession(), quiz.ModeDiagnostic).Title(); got != "Diagnostic" {
		t.Errorf("Title = %q, want Diagnostic", got)
	}
	if got := New(&fakeSubmitter{}, testSession(), quiz.ModeAssessment).Title(); got != "Assessment" {
		t.Errorf("Title = %q, want Assessment", got)
	}
}

func TestQuizScreen_LetterAnswersAdvance(t *testing.T) {
	s := New(&fakeSubmitter{}, testSession(), quiz.ModeAssessment)

	s.Update(keyPress('b'))
	if s.current != 1 {
		t.Fatalf("current = %d, want 1 after answering", s.current)
	}
	if got := s.Responses()["q1"]; got != 1 {
		t.Errorf("q1 response = %d, want 1", got)
	}
}

func TestQuizScreen_ArrowsThenEnter(t *testing.T) {
	s := New(&fakeSubmitter{}, testSession(), quiz.ModeAssessment)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	if s.current != 0 {
		t.Fatalf("navigation should not advance, current = %d", s.current)
	}
	s.Update(specialKey(tea.KeyEnter))
	if got := s.Responses()["q1"]; got != 2 {
		t.Errorf("q1 response = %d, want 2", got)
	}
	if s.current != 1 {
		t.Errorf("current = %d, want 1", s.current)
	}
}

func TestQuizScreen_PreviousQuestion(t *testing.T) {
	s := New(&fakeSubmitter{}, testSession(), quiz.ModeAssessment)
	s.Update(keyPress('a'))
	s.Update(specialKey(tea.KeyLeft))
	if s.current != 0 {
		t.Errorf("current = %d, want 0 after going back", s.current)
	}
}

func TestQuizScreen_SubmitsWhenAllAnswered(t *testing.T) {
	fs := &fakeSubmitter{}
	s := New(fs, testSession(), quiz.ModeDiagnostic)

	s.Update(keyPress('a'))
	s.Update(keyPress('b'))
	_, cmd := s.Update(keyPress('c'))
	if cmd == nil {
		t.Fatal("expected submit command after last answer")
	}
	if !s.submitting {
		t.Error("expected submitting state")
	}

	msg := cmd()
	if fs.sessionID != "session-oauth-1" || fs.mode != quiz.ModeDiagnostic {
		t.Errorf("submitted %q/%q", fs.sessionID, fs.mode)
	}
	want := quiz.Responses{"q1": 0, "q2": 1, "q3": 2}
	for id, v := range want {
		if fs.responses[id] != v {
			t.Errorf("response %s = %d, want %d", id, fs.responses[id], v)
		}
	}

	_, next := s.Update(msg)
	if next == nil {
		t.Fatal("expected navigation to results")
	}
}

func TestQuizScreen_ResultReplacesScreen(t *testing.T) {
	s := New(&fakeSubmitter{}, testSession(), quiz.ModeAssessment)
	_, cmd := s.Update(submittedMsg{Submission: &studio.Submission{Message: "done"}})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected BatchMsg, got %T", cmd())
	}
	var replaced bool
	for _, c := range batch {
		if c == nil {
			continue
		}
		if r, ok := c().(router.ReplaceScreenMsg); ok {
			_, replaced = r.Screen.(*summary.SummaryScreen)
		}
	}
	if !replaced {
		t.Error("expected ReplaceScreenMsg with the summary screen")
	}
}

func TestQuizScreen_SubmitError(t *testing.T) {
	s := New(&fakeSubmitter{err: errors.New("disk full")}, testSession(), quiz.ModeAssessment)
	s.Update(keyPress('a'))
	s.Update(keyPress('a'))
	_, cmd := s.Update(keyPress('a'))
	s.Update(cmd())

	if s.submitting {
		t.Error("submitting should be cleared after an error")
	}
	if !strings.Contains(s.View(100, 30), "disk full") {
		t.Error("expected error in view")
	}
}

func TestQuizScreen_EmptyQuiz(t *testing.T) {
	sess := testSession()
	sess.Quiz = nil
	s := New(&fakeSubmitter{}, sess, quiz.ModeAssessment)
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("empty quiz should ignore keys")
	}
	if !strings.Contains(s.View(100, 30), "no quiz questions") {
		t.Error("expected empty-quiz message")
	}
}
