package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// rankRepo implements RankRepo over the rank_kv table.
type rankRepo struct {
	drv dialect.ExecQuerier
}

func (r *rankRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := builder().Select("value").
		From(entsql.Table(tableRank)).
		Where(entsql.EQ("key", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, false, fmt.Errorf("query rank %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return nil, false, fmt.Errorf("scan rank %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *rankRepo) Put(ctx context.Context, key string, value []byte) error {
	query, args := builder().Insert(tableRank).
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC().Format(time.RFC3339Nano)).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("put rank %s: %w", key, err)
	}
	return nil
}

// Clear deletes the stored state and config.
func (r *rankRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(tableRank).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear rank: %w", err)
	}
	return nil
}
