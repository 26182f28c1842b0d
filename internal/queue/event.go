// Package queue defines the domain events exchanged over the message
// broker, the publisher used by HTTP handlers and the worker that turns
// events into user notifications.
package queue

import (
	"fmt"
	"time"

	"github.com/iliyamo/ticket-booking-api/internal/model"
)

// Event types published after a successful write.
const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
	EventPaymentInitiated = "payment.initiated"
)

// Event is published after a booking or payment write commits.  It
// carries enough information for the worker to address a notification
// without querying the bookings table, except for payment events which
// only know their booking.
type Event struct {
	Type       string  `json:"type"`
	BookingID  string  `json:"booking_id"`
	UserID     string  `json:"user_id,omitempty"`
	PaymentID  string  `json:"payment_id,omitempty"`
	Status     string  `json:"status,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
	Currency   string  `json:"currency,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}

// BookingEvent builds a booking.* event of the given type.
func BookingEvent(typ string, b *model.Booking) Event {
	return Event{
		Type:       typ,
		BookingID:  b.ID,
		UserID:     b.UserID,
		Status:     b.Status,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// PaymentEvent builds a payment.initiated event.
func PaymentEvent(p *model.Payment) Event {
	return Event{
		Type:       EventPaymentInitiated,
		BookingID:  p.BookingID,
		PaymentID:  p.ID,
		Status:     p.Status,
		Amount:     p.Amount,
		Currency:   p.Currency,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Message renders the notification text for the event.
func (e Event) Message() string {
	switch e.Type {
	case EventBookingCreated:
		return fmt.Sprintf("Booking %s was created with status %s.", e.BookingID, e.Status)
	case EventBookingUpdated:
		return fmt.Sprintf("Booking %s was updated; status is now %s.", e.BookingID, e.Status)
	case EventBookingCancelled:
		return fmt.Sprintf("Booking %s was cancelled.", e.BookingID)
	case EventPaymentInitiated:
		return fmt.Sprintf("Payment %s of %.2f %s was initiated for booking %s.", e.PaymentID, e.Amount, e.Currency, e.BookingID)
	}
	return ""
}

func knownType(t string) bool {
	switch t {
	case EventBookingCreated, EventBookingUpdated, EventBookingCancelled, EventPaymentInitiated:
		return true
	}
	return false
}
