package studio

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/expertmaker/internal/rank"
	"github.com/abhisek/expertmaker/internal/store"
)

// RankStatus is the learner's standing with the rules it was computed under.
type RankStatus struct {
	State    rank.State
	Config   rank.Config
	Belt     string
	Progress int
}

// Rank returns the stored rank state and rules. Missing or unreadable
// entries fall back to the initial state and the default rules.
func (s *Service) Rank(ctx context.Context) (RankStatus, error) {
	state, err := s.rankState(ctx)
	if err != nil {
		return RankStatus{}, err
	}
	cfg, err := s.rankConfig(ctx)
	if err != nil {
		return RankStatus{}, err
	}
	return RankStatus{
		State:    state,
		Config:   cfg,
		Belt:     rank.BeltName(state),
		Progress: rank.Progress(state, cfg),
	}, nil
}

// SetRankConfig stores new rank rules. The current state is not recomputed.
func (s *Service) SetRankConfig(ctx context.Context, cfg rank.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return putJSON(ctx, s.repos.Rank, store.RankKeyConfig, cfg)
}

func (s *Service) rankState(ctx context.Context) (rank.State, error) {
	return loadJSON(ctx, s, store.RankKeyState, rank.Initial())
}

func (s *Service) rankConfig(ctx context.Context) (rank.Config, error) {
	cfg, err := loadJSON(ctx, s, store.RankKeyConfig, s.defaults)
	if err != nil {
		return s.defaults, err
	}
	if err := cfg.Validate(); err != nil {
		s.log.Warn("stored rank config is invalid, using defaults", "error", err)
		return s.defaults, nil
	}
	return cfg, nil
}

// loadJSON decodes the rank value under key. A missing or corrupt value
// yields fallback; corruption is logged. Only storage failures are returned.
func loadJSON[T any](ctx context.Context, s *Service, key string, fallback T) (T, error) {
	raw, ok, err := s.repos.Rank.Get(ctx, key)
	if err != nil {
		return fallback, fmt.Errorf("load rank %s: %w", key, err)
	}
	if !ok {
		return fallback, nil
	}
	v := fallback
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn("failed to parse stored rank data, using defaults", "key", key, "error", err)
		return fallback, nil
	}
	return v, nil
}

func putJSON(ctx context.Context, ranks store.RankRepo, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode rank %s: %w", key, err)
	}
	if err := ranks.Put(ctx, key, data); err != nil {
		return err
	}
	return nil
}
