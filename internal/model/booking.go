package model

import "time"

// DefaultBookingStatus is assigned when a booking is written without one.
const DefaultBookingStatus = "pending"

// Booking records a user's booking of a room and/or seat.  Room and seat
// are optional; status is free text ("pending", "confirmed", ...).
type Booking struct {
	ID        string     // bookings.id
	UserID    string     // bookings.user_id (references users.id)
	RoomID    *string    // bookings.room_id (nullable)
	SeatID    *string    // bookings.seat_id (nullable)
	Status    string     // bookings.status
	CreatedAt *time.Time // bookings.created_at
	UpdatedAt *time.Time // bookings.updated_at, refreshed on every update
}
