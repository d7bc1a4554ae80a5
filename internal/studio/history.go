package studio

import (
	"context"
	"errors"

	"github.com/abhisek/expertmaker/internal/assistant"
	"github.com/abhisek/expertmaker/internal/quiz"
	"github.com/abhisek/expertmaker/internal/store"
)

// recentAssessments is how many assessments feed the assistant's weakness
// list.
const recentAssessments = 6

// History returns every quiz attempt, oldest first.
func (s *Service) History(ctx context.Context) ([]store.TestRecord, error) {
	return s.repos.Tests.List(ctx)
}

// RecentWeaknesses returns the questions missed in the last n assessments,
// oldest first.
func (s *Service) RecentWeaknesses(ctx context.Context, n int) ([]string, error) {
	all, err := s.repos.Tests.List(ctx)
	if err != nil {
		return nil, err
	}
	var assessments []store.TestRecord
	for _, r := range all {
		if r.Mode() == quiz.ModeAssessment {
			assessments = append(assessments, r)
		}
	}
	if len(assessments) > n {
		assessments = assessments[len(assessments)-n:]
	}
	var out []string
	for _, r := range assessments {
		for _, w := range r.Weaknesses {
			out = append(out, w.Question)
		}
	}
	return out, nil
}

// SessionAttempts returns the attempts at one session's quiz in mode,
// oldest first.
func (s *Service) SessionAttempts(ctx context.Context, sessionID string, mode quiz.Mode) ([]store.TestRecord, error) {
	return s.repos.Tests.ListByTask(ctx, quiz.TaskKey(sessionID, mode))
}

// LatestScores maps each session to its most recent attempt in mode.
func (s *Service) LatestScores(ctx context.Context, mode quiz.Mode) (map[string]store.TestRecord, error) {
	all, err := s.repos.Tests.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]store.TestRecord)
	for _, r := range all {
		if r.Mode() == mode {
			out[r.SessionID()] = r
		}
	}
	return out, nil
}

// AssistantContext gathers what the offline assistant needs. Having no plan
// is not an error.
func (s *Service) AssistantContext(ctx context.Context) (assistant.Context, error) {
	var c assistant.Context
	p, err := s.Plan(ctx)
	switch {
	case err == nil:
		c.PlanSummary = assistant.PlanSummary(p)
	case !errors.Is(err, ErrNoPlan):
		return c, err
	}
	c.RecentWeaknesses, err = s.RecentWeaknesses(ctx, recentAssessments)
	return c, err
}

// Ask answers a study question with the offline assistant.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	c, err := s.AssistantContext(ctx)
	if err != nil {
		return "", err
	}
	return assistant.Reply(question, c), nil
}
