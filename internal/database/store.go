package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrCommit marks a failure of the final COMMIT of a transaction.
var ErrCommit = errors.New("commit failed")

// Store is the process-wide connection pool.  It is built once at startup
// and handed to every repository; it is safe for concurrent use.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an already opened pool.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) DB() *sql.DB            { return s.db }
func (s *Store) Dialect() Dialect       { return s.dialect }
func (s *Store) Rebind(q string) string { return s.dialect.Rebind(q) }
func (s *Store) Close() error           { return s.db.Close() }

// Ping checks that the store is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// WithTx runs fn inside a transaction.  The transaction is committed when
// fn returns nil and rolled back on every other exit, including panics.
// A failed commit is reported wrapped in ErrCommit.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommit, err)
	}
	committed = true
	return nil
}
