package studio

import (
	"context"
	"fmt"

	"github.com/abhisek/expertmaker/internal/plan"
	"github.com/abhisek/expertmaker/internal/quiz"
	"github.com/abhisek/expertmaker/internal/rank"
	"github.com/abhisek/expertmaker/internal/store"
)

// Submission is everything that changed because of one quiz attempt.
type Submission struct {
	Session plan.Session
	Result  quiz.Result
	Record  store.TestRecord
	// Outcome is nil for diagnostics.
	Outcome *rank.Outcome
	// Completed is true when the attempt marked the session complete.
	Completed bool
	Message   string
}

// Submit grades responses for a session's quiz and records the attempt.
// Assessments also advance the rank and, when passed with auto-complete on,
// mark the session complete.
func (s *Service) Submit(ctx context.Context, sessionID string, mode quiz.Mode, responses quiz.Responses) (*Submission, error) {
	p, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}
	session, _, ok := p.Session(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if !quiz.Complete(session.Quiz, responses) {
		return nil, ErrIncompleteResponses
	}

	cfg, err := s.rankConfig(ctx)
	if err != nil {
		return nil, err
	}

	result := quiz.Grade(session.Quiz, responses)
	rec := store.TestRecord{
		ID:         s.recordID(),
		TaskID:     quiz.TaskKey(session.ID, mode),
		Score:      result.Score,
		Passed:     quiz.Passed(result.Score, cfg.PassScore),
		Timestamp:  s.timestamp(),
		Weaknesses: result.Weaknesses,
	}
	sub := &Submission{Session: session, Result: result, Record: rec}
	log := s.log.With("session_id", session.ID, "mode", string(mode), "score", result.Score)

	if !mode.AffectsRank() {
		if err := s.repos.Tests.Append(ctx, rec); err != nil {
			return nil, err
		}
		sub.Message = "Diagnostic captured. Tailor your study using the guidance below."
		log.Info("diagnostic recorded")
		return sub, nil
	}

	state, err := s.rankState(ctx)
	if err != nil {
		return nil, err
	}
	out := rank.Apply(state, cfg, result.Score)
	complete := rec.Passed && p.AutoCompleteOnPass && !p.IsCompleted(session.ID)

	err = s.st.InTx(ctx, func(r store.Repos) error {
		if err := r.Tests.Append(ctx, rec); err != nil {
			return err
		}
		if err := putJSON(ctx, r.Rank, store.RankKeyState, out.State); err != nil {
			return err
		}
		if complete {
			return s.savePlan(ctx, r.Plans, p.WithCompletion(session.ID, true))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sub.Outcome = &out
	sub.Completed = complete

	if rec.Passed {
		sub.Message = fmt.Sprintf("Great job! Earned %d points toward your next stripe.", out.AwardedPoints)
	} else {
		sub.Message = fmt.Sprintf("Keep going! %d review point added. Check the study plan for gaps.", out.AwardedPoints)
	}
	log.Info("assessment recorded",
		"passed", rec.Passed,
		"awarded_points", out.AwardedPoints,
		"leveled_up", out.LeveledUp,
		"belt", rank.BeltName(out.State))
	return sub, nil
}
