package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/ticket-booking-api/internal/database"
	"github.com/iliyamo/ticket-booking-api/internal/model"
)

const bookingColumns = "id, user_id, room_id, seat_id, status, created_at, updated_at"

// BookingRepo encapsulates all database queries related to bookings.  It
// depends on a Store which is configured once at startup.
type BookingRepo struct {
	store *database.Store
}

func NewBookingRepo(s *database.Store) *BookingRepo { return &BookingRepo{store: s} }

func scanBooking(row rowScanner) (*model.Booking, error) {
	var (
		b            model.Booking
		room, seat   sql.NullString
		created, upd nullTime
	)
	if err := row.Scan(&b.ID, &b.UserID, &room, &seat, &b.Status, &created, &upd); err != nil {
		return nil, err
	}
	b.RoomID = stringPtr(room)
	b.SeatID = stringPtr(seat)
	b.CreatedAt = created.ptr()
	b.UpdatedAt = upd.ptr()
	return &b, nil
}

func (r *BookingRepo) get(ctx context.Context, q querier, id string) (*model.Booking, error) {
	b, err := scanBooking(q.QueryRowContext(ctx, r.store.Rebind("SELECT "+bookingColumns+" FROM bookings WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// Create inserts a booking.  After the insert the row is read back within
// the same transaction so callers receive the server-assigned timestamps.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if b.Status == "" {
		b.Status = model.DefaultBookingStatus
	}
	return write(ctx, r.store, func(tx *sql.Tx) error {
		const q = "INSERT INTO bookings (id, user_id, room_id, seat_id, status) VALUES (?, ?, ?, ?, ?)"
		if _, err := tx.ExecContext(ctx, r.store.Rebind(q),
			b.ID, b.UserID, nullString(b.RoomID), nullString(b.SeatID), b.Status); err != nil {
			return invalid(err)
		}
		stored, err := r.get(ctx, tx, b.ID)
		if err != nil {
			return err
		}
		*b = *stored
		return nil
	})
}

// GetByID fetches a booking or returns ErrNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return r.get(ctx, r.store.DB(), id)
}

// List returns one page of bookings, optionally restricted to an exact
// status match.
func (r *BookingRepo) List(ctx context.Context, f model.BookingFilter, page model.Page) ([]model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings"
	args := []any{}
	if f.Status != "" {
		q += " WHERE status = ?"
		args = append(args, f.Status)
	}
	q += " ORDER BY created_at, id LIMIT ? OFFSET ?"
	args = append(args, page.Limit, page.Offset)

	rows, err := r.store.DB().QueryContext(ctx, r.store.Rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces every mutable field of an existing booking.  Bookings
// are the only entity with updated_at; it is set from the dialect's
// current-timestamp expression.
func (r *BookingRepo) Update(ctx context.Context, b *model.Booking) error {
	if b.Status == "" {
		b.Status = model.DefaultBookingStatus
	}
	return write(ctx, r.store, func(tx *sql.Tx) error {
		if err := mustExist(ctx, tx, r.store, "bookings", b.ID); err != nil {
			return err
		}
		q := "UPDATE bookings SET user_id = ?, room_id = ?, seat_id = ?, status = ?, updated_at = " +
			r.store.Dialect().Now() + " WHERE id = ?"
		if _, err := tx.ExecContext(ctx, r.store.Rebind(q),
			b.UserID, nullString(b.RoomID), nullString(b.SeatID), b.Status, b.ID); err != nil {
			return invalid(err)
		}
		stored, err := r.get(ctx, tx, b.ID)
		if err != nil {
			return err
		}
		*b = *stored
		return nil
	})
}

// Delete removes a booking.  It returns the deleted row so callers can
// report on it, or ErrNotFound.
func (r *BookingRepo) Delete(ctx context.Context, id string) (*model.Booking, error) {
	var deleted *model.Booking
	err := write(ctx, r.store, func(tx *sql.Tx) error {
		b, err := r.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, r.store.Rebind("DELETE FROM bookings WHERE id = ?"), id); err != nil {
			return invalid(err)
		}
		deleted = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
