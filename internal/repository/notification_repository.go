package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/ticket-booking-api/internal/database"
	"github.com/iliyamo/ticket-booking-api/internal/model"
)

const notificationColumns = "id, user_id, type, message, created_at"

// NotificationRepo lists notifications for the API and inserts them for
// the notification worker.
type NotificationRepo struct {
	store *database.Store
}

func NewNotificationRepo(s *database.Store) *NotificationRepo { return &NotificationRepo{store: s} }

func scanNotification(row rowScanner) (*model.Notification, error) {
	var (
		n       model.Notification
		created nullTime
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &created); err != nil {
		return nil, err
	}
	n.CreatedAt = created.ptr()
	return &n, nil
}

// Create inserts a notification.  There is no HTTP endpoint for this; the
// worker is the only writer.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return write(ctx, r.store, func(tx *sql.Tx) error {
		const q = "INSERT INTO notifications (id, user_id, type, message) VALUES (?, ?, ?, ?)"
		if _, err := tx.ExecContext(ctx, r.store.Rebind(q), n.ID, n.UserID, n.Type, n.Message); err != nil {
			return invalid(err)
		}
		stored, err := scanNotification(tx.QueryRowContext(ctx,
			r.store.Rebind("SELECT "+notificationColumns+" FROM notifications WHERE id = ?"), n.ID))
		if err != nil {
			return err
		}
		*n = *stored
		return nil
	})
}

// List returns one page of notifications, optionally for a single user.
func (r *NotificationRepo) List(ctx context.Context, f model.NotificationFilter, page model.Page) ([]model.Notification, error) {
	q := "SELECT " + notificationColumns + " FROM notifications"
	args := []any{}
	if f.UserID != "" {
		q += " WHERE user_id = ?"
		args = append(args, f.UserID)
	}
	q += " ORDER BY created_at, id LIMIT ? OFFSET ?"
	args = append(args, page.Limit, page.Offset)

	rows, err := r.store.DB().QueryContext(ctx, r.store.Rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
