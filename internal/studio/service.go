// Package studio is the session orchestrator. It owns the learner's mutable
// state (plan, rank, quiz history), feeds quiz results into the rank engine
// and plan completion, and persists every change through the store.
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/expertmaker/internal/catalog"
	"github.com/abhisek/expertmaker/internal/plan"
	"github.com/abhisek/expertmaker/internal/rank"
	"github.com/abhisek/expertmaker/internal/store"
)

var (
	ErrNoPlan              = errors.New("no plan yet, generate one first")
	ErrNoTopics            = errors.New("select at least one topic to generate a plan")
	ErrInvalidRequest      = errors.New("invalid plan request")
	ErrSessionNotFound     = errors.New("session not found in the current plan")
	ErrIncompleteResponses = errors.New("answer every question before submitting")
	ErrImport              = errors.New("unable to import plan, the file may be malformed")
)

// keepSnapshots bounds the plan history kept in the store.
const keepSnapshots = 20

// Service coordinates the core engines with persistence.
type Service struct {
	cat      *catalog.Catalog
	st       *store.Store
	repos    store.Repos
	defaults rank.Config
	strict   bool
	now      func() time.Time
	newID    plan.IDFunc
	log      *slog.Logger
	validate *validator.Validate
}

// Option configures a Service.
type Option func(*Service)

// WithRankDefaults sets the rules used when none are stored.
func WithRankDefaults(cfg rank.Config) Option {
	return func(s *Service) { s.defaults = cfg }
}

// WithStrictTopics rejects unknown topic IDs instead of dropping them.
func WithStrictTopics(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDFunc overrides the identifier source for plans and test records.
func WithIDFunc(f plan.IDFunc) Option {
	return func(s *Service) { s.newID = f }
}

// WithLogger sets the logger. The slog default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New creates a Service over st using topics from cat.
func New(st *store.Store, cat *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		cat:      cat,
		st:       st,
		repos:    store.Repos{Plans: st.Plans(), Rank: st.Rank(), Tests: st.Tests()},
		defaults: rank.DefaultConfig(),
		now:      time.Now,
		newID:    plan.NewID,
		log:      slog.Default(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the topic catalog the service generates from.
func (s *Service) Catalog() *catalog.Catalog {
	return s.cat
}

// Generate validates req, builds a new plan, and makes it current. Quiz
// history is cleared and rank state restarts; rank rules are kept.
func (s *Service) Generate(ctx context.Context, req plan.Request) (*plan.ExpertPlan, error) {
	if len(req.Topics) == 0 {
		return nil, ErrNoTopics
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	opts := []plan.Option{plan.WithClock(s.now), plan.WithIDFunc(s.newID)}
	if s.strict {
		opts = append(opts, plan.Strict())
	}
	p, err := plan.Generate(s.cat, req, opts...)
	if err != nil {
		return nil, err
	}

	cfg, err := s.rankConfig(ctx)
	if err != nil {
		return nil, err
	}
	err = s.st.InTx(ctx, func(r store.Repos) error {
		if err := s.savePlan(ctx, r.Plans, p); err != nil {
			return err
		}
		if err := r.Tests.Clear(ctx); err != nil {
			return err
		}
		if err := putJSON(ctx, r.Rank, store.RankKeyState, rank.Initial()); err != nil {
			return err
		}
		return putJSON(ctx, r.Rank, store.RankKeyConfig, cfg)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("plan generated", "plan_id", p.ID, "weeks", p.Weeks, "sessions", p.SessionCount())
	return p, nil
}

// Plan returns the current plan.
func (s *Service) Plan(ctx context.Context) (*plan.ExpertPlan, error) {
	snap, err := s.repos.Plans.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	if snap == nil {
		return nil, ErrNoPlan
	}
	return snap.Plan, nil
}

func (s *Service) savePlan(ctx context.Context, plans store.PlanRepo, p *plan.ExpertPlan) error {
	if err := plans.Save(ctx, p); err != nil {
		return err
	}
	if err := plans.Prune(ctx, keepSnapshots); err != nil {
		s.log.Warn("prune plan snapshots", "error", err)
	}
	return nil
}

// update applies fn to the current plan and stores the result.
func (s *Service) update(ctx context.Context, fn func(*plan.ExpertPlan) (*plan.ExpertPlan, error)) (*plan.ExpertPlan, error) {
	cur, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(cur)
	if err != nil {
		return nil, err
	}
	if err := s.savePlan(ctx, s.repos.Plans, next); err != nil {
		return nil, err
	}
	return next, nil
}

// ToggleCompletion flips the completion mark of a session.
func (s *Service) ToggleCompletion(ctx context.Context, sessionID string) (*plan.ExpertPlan, error) {
	return s.update(ctx, func(p *plan.ExpertPlan) (*plan.ExpertPlan, error) {
		if _, _, ok := p.Session(sessionID); !ok {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return p.ToggleCompletion(sessionID), nil
	})
}

// SetNote replaces the personal note.
func (s *Service) SetNote(ctx context.Context, note string) (*plan.ExpertPlan, error) {
	return s.update(ctx, func(p *plan.ExpertPlan) (*plan.ExpertPlan, error) {
		return p.WithNote(note), nil
	})
}

// SetPace changes the plan's pace.
func (s *Service) SetPace(ctx context.Context, pace plan.Pace) (*plan.ExpertPlan, error) {
	parsed, err := plan.ParsePace(string(pace))
	if err != nil {
		return nil, err
	}
	return s.update(ctx, func(p *plan.ExpertPlan) (*plan.ExpertPlan, error) {
		return p.WithPace(parsed), nil
	})
}

// SetAutoComplete toggles marking sessions complete on a passed assessment.
func (s *Service) SetAutoComplete(ctx context.Context, on bool) (*plan.ExpertPlan, error) {
	return s.update(ctx, func(p *plan.ExpertPlan) (*plan.ExpertPlan, error) {
		return p.WithAutoComplete(on), nil
	})
}

// Reset deletes the plan, quiz history, and rank data.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.st.Reset(ctx); err != nil {
		return err
	}
	s.log.Info("learner data reset")
	return nil
}

func (s *Service) recordID() string {
	return s.newID("test")
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(plan.TimestampLayout)
}
