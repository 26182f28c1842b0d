package model

import "time"

// Notification is a message addressed to a user.  Rows are written by the
// notification worker from booking and payment events.
type Notification struct {
	ID        string     // notifications.id
	UserID    string     // notifications.user_id (references users.id)
	Type      string     // notifications.type, e.g. "booking.created"
	Message   string     // notifications.message
	CreatedAt *time.Time // notifications.created_at
}
