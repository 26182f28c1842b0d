package model

import "time"

// DefaultPaymentStatus is assigned when a payment is initiated without one.
const DefaultPaymentStatus = "initiated"

// Payment is a payment initiated against a booking.  Payments are never
// modified after creation.
type Payment struct {
	ID        string     // payments.id
	BookingID string     // payments.booking_id (references bookings.id)
	Amount    float64    // payments.amount
	Currency  string     // payments.currency
	Status    string     // payments.status
	CreatedAt *time.Time // payments.created_at
}
