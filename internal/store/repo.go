package store

import (
	"context"
	"time"

	"github.com/abhisek/expertmaker/internal/plan"
	"github.com/abhisek/expertmaker/internal/quiz"
)

const (
	tablePlans = "plan_snapshots"
	tableRank  = "rank_kv"
	tableTests = "test_records"
)

// Rank keys.
const (
	RankKeyState  = "state"
	RankKeyConfig = "config"
)

// PlanSnapshot is one saved version of the learner's plan.
type PlanSnapshot struct {
	ID      int64
	SavedAt time.Time
	Plan    *plan.ExpertPlan
}

// PlanRepo keeps the plan as an append-only series of snapshots; the newest
// one is the current plan.
type PlanRepo interface {
	// Save stores p as the newest snapshot.
	Save(ctx context.Context, p *plan.ExpertPlan) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*PlanSnapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// Clear deletes every snapshot.
	Clear(ctx context.Context) error
}

// RankRepo stores the rank state and config as independent JSON blobs.
// Values are returned raw so callers decide how to recover from bad data.
type RankRepo interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put inserts or replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error

	// Clear deletes every key.
	Clear(ctx context.Context) error
}

// TestRecord is one graded quiz attempt.
type TestRecord struct {
	ID         string          `json:"id"`
	TaskID     string          `json:"taskId"`
	Score      int             `json:"score"`
	Passed     bool            `json:"passed"`
	Timestamp  string          `json:"timestamp"`
	Weaknesses []quiz.Weakness `json:"weaknesses"`
}

// SessionID is the session the attempt belongs to, derived from TaskID.
func (r TestRecord) SessionID() string {
	id, _ := quiz.ParseTaskKey(r.TaskID)
	return id
}

// Mode is the quiz track of the attempt, derived from TaskID.
func (r TestRecord) Mode() quiz.Mode {
	_, m := quiz.ParseTaskKey(r.TaskID)
	return m
}

// Repos groups the repositories bound to one connection or transaction.
type Repos struct {
	Plans PlanRepo
	Rank  RankRepo
	Tests TestRepo
}

// TestRepo is the append-only quiz history.
type TestRepo interface {
	// Append records an attempt.
	Append(ctx context.Context, rec TestRecord) error

	// List returns every attempt, oldest first.
	List(ctx context.Context) ([]TestRecord, error)

	// ListByTask returns attempts for one task key, oldest first.
	ListByTask(ctx context.Context, taskID string) ([]TestRecord, error)

	// Clear deletes the whole history.
	Clear(ctx context.Context) error
}
