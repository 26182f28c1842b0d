package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/ticket-booking-api/internal/database"
	"github.com/iliyamo/ticket-booking-api/internal/model"
)

const paymentColumns = "id, booking_id, amount, currency, status, created_at"

// PaymentRepo stores payments.  Payments are insert-only.
type PaymentRepo struct {
	store *database.Store
}

func NewPaymentRepo(s *database.Store) *PaymentRepo { return &PaymentRepo{store: s} }

func scanPayment(row rowScanner) (*model.Payment, error) {
	var (
		p       model.Payment
		created nullTime
	)
	if err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Currency, &p.Status, &created); err != nil {
		return nil, err
	}
	p.CreatedAt = created.ptr()
	return &p, nil
}

func (r *PaymentRepo) get(ctx context.Context, q querier, id string) (*model.Payment, error) {
	p, err := scanPayment(q.QueryRowContext(ctx, r.store.Rebind("SELECT "+paymentColumns+" FROM payments WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// Create records a new payment.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	if p.Status == "" {
		p.Status = model.DefaultPaymentStatus
	}
	return write(ctx, r.store, func(tx *sql.Tx) error {
		const q = "INSERT INTO payments (id, booking_id, amount, currency, status) VALUES (?, ?, ?, ?, ?)"
		if _, err := tx.ExecContext(ctx, r.store.Rebind(q), p.ID, p.BookingID, p.Amount, p.Currency, p.Status); err != nil {
			return invalid(err)
		}
		stored, err := r.get(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		*p = *stored
		return nil
	})
}

// GetByID fetches a payment or returns ErrNotFound.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	return r.get(ctx, r.store.DB(), id)
}
