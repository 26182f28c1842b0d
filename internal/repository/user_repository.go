package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/ticket-booking-api/internal/database"
	"github.com/iliyamo/ticket-booking-api/internal/model"
)

const userColumns = "id, email, name, role, created_at"

// UserRepo encapsulates all database queries related to users.
type UserRepo struct {
	store *database.Store
}

func NewUserRepo(s *database.Store) *UserRepo { return &UserRepo{store: s} }

func scanUser(row rowScanner) (*model.User, error) {
	var (
		u       model.User
		created nullTime
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &created); err != nil {
		return nil, err
	}
	u.CreatedAt = created.ptr()
	return &u, nil
}

func (r *UserRepo) get(ctx context.Context, q querier, id string) (*model.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx, r.store.Rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// Create inserts a user.  On success u is refreshed from the stored row so
// it carries the server-assigned created_at.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	if u.Role == "" {
		u.Role = model.DefaultUserRole
	}
	return write(ctx, r.store, func(tx *sql.Tx) error {
		const q = "INSERT INTO users (id, email, name, role) VALUES (?, ?, ?, ?)"
		if _, err := tx.ExecContext(ctx, r.store.Rebind(q), u.ID, u.Email, u.Name, u.Role); err != nil {
			return invalid(err)
		}
		stored, err := r.get(ctx, tx, u.ID)
		if err != nil {
			return err
		}
		*u = *stored
		return nil
	})
}

// GetByID fetches a user or returns ErrNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.get(ctx, r.store.DB(), id)
}

// List returns one page of users.
func (r *UserRepo) List(ctx context.Context, page model.Page) ([]model.User, error) {
	q := "SELECT " + userColumns + " FROM users ORDER BY created_at, id LIMIT ? OFFSET ?"
	rows, err := r.store.DB().QueryContext(ctx, r.store.Rebind(q), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites email, name and role of an existing user.  id and
// created_at are never touched.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	if u.Role == "" {
		u.Role = model.DefaultUserRole
	}
	return write(ctx, r.store, func(tx *sql.Tx) error {
		if err := mustExist(ctx, tx, r.store, "users", u.ID); err != nil {
			return err
		}
		const q = "UPDATE users SET email = ?, name = ?, role = ? WHERE id = ?"
		if _, err := tx.ExecContext(ctx, r.store.Rebind(q), u.Email, u.Name, u.Role, u.ID); err != nil {
			return invalid(err)
		}
		stored, err := r.get(ctx, tx, u.ID)
		if err != nil {
			return err
		}
		*u = *stored
		return nil
	})
}

// Delete removes a user or returns ErrNotFound.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return write(ctx, r.store, func(tx *sql.Tx) error {
		if err := mustExist(ctx, tx, r.store, "users", id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, r.store.Rebind("DELETE FROM users WHERE id = ?"), id); err != nil {
			return invalid(err)
		}
		return nil
	})
}
