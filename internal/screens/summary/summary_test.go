package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/expertmaker/internal/quiz"
	"github.com/abhisek/expertmaker/internal/rank"
	"github.com/abhisek/expertmaker/internal/router"
	"github.com/abhisek/expertmaker/internal/store"
	"github.com/abhisek/expertmaker/internal/studio"
)

func testSubmission() *studio.Submission {
	return &studio.Submission{
		Result: quiz.Result{
			Score:   75,
			Correct: 3,
			Total:   4,
			Weaknesses: []quiz.Weakness{
				{Question: "What binds the code to the client?", Rationale: "PKCE ties the verifier to the code.", DocLink: "https://oauth.net/2/pkce/"},
			},
		},
		Record:  store.TestRecord{ID: "test-1", TaskID: "session-oauth-1::assessment", Score: 75},
		Outcome: &rank.Outcome{State: rank.State{Points: 1}, AwardedPoints: 1},
		Message: "Keep going! 1 review point added. Check the study plan for gaps.",
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSubmission())
	if s.Title() != "Quiz Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSubmission())
	view := s.View(100, 30)
	for _, want := range []string{"Keep going!", "Score: 75%", "What binds the code", "White belt"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Diagnostic(t *testing.T) {
	sub := testSubmission()
	sub.Outcome = nil
	view := New(sub).View(100, 30)
	if !strings.Contains(view, "Diagnostic captured") {
		t.Error("expected diagnostic headline")
	}
	if strings.Contains(view, "belt") {
		t.Error("diagnostic results should not show rank")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := New(testSubmission())
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("expected a command on %q", key.String())
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("key %q: expected PopScreenMsg", key.String())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSubmission())
	if got := len(s.KeyHints()); got != 2 {
		t.Errorf("KeyHints length = %d, want 2", got)
	}
}
