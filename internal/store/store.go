package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite connection and hands out repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs pending migrations.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection serializes writers and keeps in-memory databases
	// visible to every query.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db)}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Plans returns the plan snapshot repository.
func (s *Store) Plans() PlanRepo {
	return &planRepo{drv: s.drv}
}

// Rank returns the rank key/value repository.
func (s *Store) Rank() RankRepo {
	return &rankRepo{drv: s.drv}
}

// Tests returns the test history repository.
func (s *Store) Tests() TestRepo {
	return &testRepo{drv: s.drv}
}

func reposOver(drv dialect.ExecQuerier) Repos {
	return Repos{
		Plans: &planRepo{drv: drv},
		Rank:  &rankRepo{drv: drv},
		Tests: &testRepo{drv: drv},
	}
}

// InTx runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise. fn must
// not use repositories obtained outside the transaction.
func (s *Store) InTx(ctx context.Context, fn func(Repos) error) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(reposOver(tx)); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rerr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Reset deletes all learner data in one transaction.
func (s *Store) Reset(ctx context.Context) error {
	return s.InTx(ctx, func(r Repos) error {
		if err := r.Plans.Clear(ctx); err != nil {
			return err
		}
		if err := r.Rank.Clear(ctx); err != nil {
			return err
		}
		return r.Tests.Clear(ctx)
	})
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// DefaultDBPath resolves the database file path in priority order:
// 1. $XDG_DATA_HOME/expertmaker/expertmaker.db
// 2. ~/.local/share/expertmaker/expertmaker.db
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "expertmaker", "expertmaker.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
