package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/expertmaker/internal/catalog"
	"github.com/abhisek/expertmaker/internal/plan"
	"github.com/abhisek/expertmaker/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPlan(t *testing.T, topics ...string) *plan.ExpertPlan {
	t.Helper()
	p, err := plan.Generate(catalog.Default(), plan.Request{Topics: topics, Weeks: 2, HoursPerWeek: 4, Pace: plan.PaceBalanced})
	require.NoError(t, err)
	return p
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_FileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "expertmaker.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expertmaker.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Rank().Put(ctx, RankKeyState, []byte(`{"beltIndex":1}`)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, ok, err := s.Rank().Get(ctx, RankKeyState)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"beltIndex":1}`, string(got))
}

func TestPlans_SaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.Plans()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap, "expected nil snapshot when none exist")

	p := testPlan(t, "oauth", "rag")
	require.NoError(t, repo.Save(ctx, p))

	snap, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, p, snap.Plan)
	assert.WithinDuration(t, time.Now(), snap.SavedAt, time.Minute)
}

func TestPlans_LatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.Plans()
	ctx := context.Background()

	p := testPlan(t, "node")
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, p.WithNote(fmt.Sprintf("note %d", i))))
	}

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "note 2", snap.Plan.PersonalNote)
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestPlans_Prune(t *testing.T) {
	s := openTestStore(t)
	repo := s.Plans()
	ctx := context.Background()

	p := testPlan(t, "node")
	for i := 0; i < 7; i++ {
		require.NoError(t, repo.Save(ctx, p.WithNote(fmt.Sprintf("v%d", i))))
	}

	require.NoError(t, repo.Prune(ctx, 5))
	assert.Equal(t, 5, countRows(t, s, tablePlans))

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v6", snap.Plan.PersonalNote)

	require.NoError(t, repo.Prune(ctx, 10))
	assert.Equal(t, 5, countRows(t, s, tablePlans))
}

func TestPlans_Clear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Plans().Save(ctx, testPlan(t, "node")))
	require.NoError(t, s.Plans().Clear(ctx))

	snap, err := s.Plans().Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRank_PutGetClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.Rank()
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, RankKeyConfig)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Put(ctx, RankKeyConfig, []byte(`{"passScore":80}`)))
	require.NoError(t, repo.Put(ctx, RankKeyConfig, []byte(`{"passScore":70}`)))

	got, ok, err := repo.Get(ctx, RankKeyConfig)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"passScore":70}`, string(got))
	assert.Equal(t, 1, countRows(t, s, tableRank))

	require.NoError(t, repo.Put(ctx, RankKeyState, []byte(`{}`)))
	require.NoError(t, repo.Clear(ctx))
	assert.Equal(t, 0, countRows(t, s, tableRank))
	_, ok, err = repo.Get(ctx, RankKeyConfig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTests_AppendAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.Tests()
	ctx := context.Background()

	records := []TestRecord{
		{ID: "t1", TaskID: quiz.TaskKey("s1", quiz.ModeDiagnostic), Score: 50, Timestamp: "2024-01-02T10:00:00.000Z",
			Weaknesses: []quiz.Weakness{{Question: "q?", Rationale: "r", DocLink: "https://d"}}},
		{ID: "t2", TaskID: quiz.TaskKey("s1", quiz.ModeAssessment), Score: 100, Passed: true, Timestamp: "2024-01-02T11:00:00.000Z"},
		{ID: "t3", TaskID: quiz.TaskKey("s1", quiz.ModeAssessment), Score: 75, Timestamp: "2024-01-02T12:00:00.000Z"},
	}
	for _, r := range records {
		require.NoError(t, repo.Append(ctx, r))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, records[0], all[0])
	assert.Equal(t, []quiz.Weakness{}, all[1].Weaknesses)
	assert.True(t, all[1].Passed)
	assert.Equal(t, "s1", all[2].SessionID())
	assert.Equal(t, quiz.ModeAssessment, all[2].Mode())

	assessments, err := repo.ListByTask(ctx, quiz.TaskKey("s1", quiz.ModeAssessment))
	require.NoError(t, err)
	require.Len(t, assessments, 2)
	assert.Equal(t, "t3", assessments[1].ID)

	assert.Error(t, repo.Append(ctx, records[0]), "duplicate record id must be rejected")
}

func TestReset_ClearsEverything(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Plans().Save(ctx, testPlan(t, "node")))
	require.NoError(t, s.Rank().Put(ctx, RankKeyState, []byte(`{}`)))
	require.NoError(t, s.Tests().Append(ctx, TestRecord{ID: "t1", TaskID: "s::diagnostic", Timestamp: "x"}))

	require.NoError(t, s.Reset(ctx))

	for _, table := range []string{tablePlans, tableRank, tableTests} {
		assert.Equal(t, 0, countRows(t, s, table), table)
	}
}

func TestInTx_CommitsAllWrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := testPlan(t, "oauth")

	err := s.InTx(ctx, func(r Repos) error {
		if err := r.Plans.Save(ctx, p); err != nil {
			return err
		}
		if err := r.Tests.Append(ctx, TestRecord{ID: "t1", TaskID: "s::assessment", Timestamp: "x"}); err != nil {
			return err
		}
		return r.Rank.Put(ctx, RankKeyState, []byte(`{"points":2}`))
	})
	require.NoError(t, err)

	snap, err := s.Plans().Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, p.ID, snap.Plan.ID)
	assert.Equal(t, 1, countRows(t, s, tableTests))
	assert.Equal(t, 1, countRows(t, s, tableRank))
}

func TestInTx_RollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	old := testPlan(t, "node")
	require.NoError(t, s.Plans().Save(ctx, old))
	require.NoError(t, s.Tests().Append(ctx, TestRecord{ID: "t0", TaskID: "s::assessment", Timestamp: "x"}))

	boom := errors.New("rank write failed")
	err := s.InTx(ctx, func(r Repos) error {
		if err := r.Plans.Save(ctx, testPlan(t, "rag")); err != nil {
			return err
		}
		if err := r.Tests.Clear(ctx); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	snap, err := s.Plans().Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, old.ID, snap.Plan.ID, "new plan must not survive a failed transaction")
	assert.Equal(t, 1, countRows(t, s, tableTests), "history must not be cleared")
}
