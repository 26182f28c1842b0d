// Package repository defines error types that are reused across multiple
// repositories.  These values allow higher layers such as handlers to
// distinguish between a missing row and a rejected write.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/ticket-booking-api/internal/database"
)

// ErrNotFound is returned when no row matches the requested id.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ValidationError wraps a write the store refused: a duplicate key, a
// broken foreign key, a failed commit.  The message is the store's own.
// Handlers should translate this into an HTTP 400 response.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error { return &ValidationError{Err: err} }

// IsValidation reports whether err is a rejected write.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// write runs fn in a request-scoped transaction and reports a failed
// commit as a ValidationError.
func write(ctx context.Context, s *database.Store, fn func(tx *sql.Tx) error) error {
	err := s.WithTx(ctx, fn)
	if errors.Is(err, database.ErrCommit) {
		return invalid(err)
	}
	return err
}

// mustExist returns ErrNotFound when table has no row with the given id.
func mustExist(ctx context.Context, tx *sql.Tx, s *database.Store, table, id string) error {
	var one int
	err := tx.QueryRowContext(ctx, s.Rebind("SELECT 1 FROM "+table+" WHERE id = ?"), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
