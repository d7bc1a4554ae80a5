package store

import (
	"context"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/expertmaker/internal/quiz"
)

// testRepo implements TestRepo over the test_records table.
type testRepo struct {
	drv dialect.ExecQuerier
}

var testColumns = []string{"id", "task_id", "score", "passed", "timestamp", "weaknesses"}

func (r *testRepo) Append(ctx context.Context, rec TestRecord) error {
	weaknesses := rec.Weaknesses
	if weaknesses == nil {
		weaknesses = []quiz.Weakness{}
	}
	data, err := json.Marshal(weaknesses)
	if err != nil {
		return fmt.Errorf("marshal weaknesses: %w", err)
	}
	query, args := builder().Insert(tableTests).
		Columns(testColumns...).
		Values(rec.ID, rec.TaskID, rec.Score, rec.Passed, rec.Timestamp, string(data)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append test record: %w", err)
	}
	return nil
}

func (r *testRepo) List(ctx context.Context) ([]TestRecord, error) {
	return r.list(ctx, nil)
}

func (r *testRepo) ListByTask(ctx context.Context, taskID string) ([]TestRecord, error) {
	return r.list(ctx, entsql.EQ("task_id", taskID))
}

func (r *testRepo) list(ctx context.Context, where *entsql.Predicate) ([]TestRecord, error) {
	sel := builder().Select(testColumns...).
		From(entsql.Table(tableTests)).
		OrderBy(entsql.Asc("seq"))
	if where != nil {
		sel = sel.Where(where)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query test records: %w", err)
	}
	defer rows.Close()

	var out []TestRecord
	for rows.Next() {
		var (
			rec        TestRecord
			weaknesses string
		)
		if err := rows.Scan(&rec.ID, &rec.TaskID, &rec.Score, &rec.Passed, &rec.Timestamp, &weaknesses); err != nil {
			return nil, fmt.Errorf("scan test record: %w", err)
		}
		if err := json.Unmarshal([]byte(weaknesses), &rec.Weaknesses); err != nil {
			return nil, fmt.Errorf("decode weaknesses of %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate test records: %w", err)
	}
	return out, nil
}

func (r *testRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(tableTests).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear test records: %w", err)
	}
	return nil
}
