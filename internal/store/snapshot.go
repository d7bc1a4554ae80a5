package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/expertmaker/internal/plan"
)

// planRepo implements PlanRepo over the plan_snapshots table.
type planRepo struct {
	drv dialect.ExecQuerier
}

func (r *planRepo) Save(ctx context.Context, p *plan.ExpertPlan) error {
	data, err := plan.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	query, args := builder().Insert(tablePlans).
		Columns("plan_id", "data", "saved_at").
		Values(p.ID, string(data), time.Now().UTC().Format(time.RFC3339Nano)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

func (r *planRepo) Latest(ctx context.Context) (*PlanSnapshot, error) {
	query, args := builder().Select("id", "data", "saved_at").
		From(entsql.Table(tablePlans)).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query latest plan: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query latest plan: %w", err)
		}
		return nil, nil
	}
	var (
		id      int64
		data    string
		savedAt string
	)
	if err := rows.Scan(&id, &data, &savedAt); err != nil {
		return nil, fmt.Errorf("scan plan: %w", err)
	}
	p, err := plan.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("decode stored plan %d: %w", id, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return nil, fmt.Errorf("parse saved_at of plan %d: %w", id, err)
	}
	return &PlanSnapshot{ID: id, SavedAt: ts, Plan: p}, nil
}

func (r *planRepo) Prune(ctx context.Context, keep int) error {
	newest := builder().Select("id").
		From(entsql.Table(tablePlans)).
		OrderBy(entsql.Desc("id")).
		Limit(keep)
	query, args := builder().Delete(tablePlans).
		Where(entsql.NotIn("id", newest)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune plans: %w", err)
	}
	return nil
}

func (r *planRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(tablePlans).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear plans: %w", err)
	}
	return nil
}
