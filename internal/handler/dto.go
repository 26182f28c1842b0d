package handler

import (
	"time"

	"github.com/iliyamo/ticket-booking-api/internal/model"
)

// timestamp renders t as RFC 3339 in UTC, or nil.
func timestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}

type UserRequest struct {
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	CreatedAt *string `json:"created_at"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: timestamp(u.CreatedAt)}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

type BookingRequest struct {
	ID     string  `json:"id" validate:"required"`
	UserID string  `json:"user_id" validate:"required"`
	RoomID *string `json:"room_id"`
	SeatID *string `json:"seat_id"`
	Status string  `json:"status"`
}

func (r BookingRequest) toModel() *model.Booking {
	return &model.Booking{ID: r.ID, UserID: r.UserID, RoomID: r.RoomID, SeatID: r.SeatID, Status: r.Status}
}

type BookingResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	RoomID    *string `json:"room_id"`
	SeatID    *string `json:"seat_id"`
	Status    string  `json:"status"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

func newBookingResponse(b *model.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		SeatID:    b.SeatID,
		Status:    b.Status,
		CreatedAt: timestamp(b.CreatedAt),
		UpdatedAt: timestamp(b.UpdatedAt),
	}
}

// PaymentRequest.Amount is a pointer so that a missing amount fails
// validation while an explicit zero does not.
type PaymentRequest struct {
	ID        string   `json:"id" validate:"required"`
	BookingID string   `json:"booking_id" validate:"required"`
	Amount    *float64 `json:"amount" validate:"required"`
	Currency  string   `json:"currency" validate:"required"`
	Status    string   `json:"status"`
}

type PaymentResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	CreatedAt *string `json:"created_at"`
}

func newPaymentResponse(p *model.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		BookingID: p.BookingID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    p.Status,
		CreatedAt: timestamp(p.CreatedAt),
	}
}

type NotificationResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Type      string  `json:"type"`
	Message   string  `json:"message"`
	CreatedAt *string `json:"created_at"`
}

func newNotificationResponse(n *model.Notification) NotificationResponse {
	return NotificationResponse{ID: n.ID, UserID: n.UserID, Type: n.Type, Message: n.Message, CreatedAt: timestamp(n.CreatedAt)}
}

// AdminAction is accepted and echoed back; it is never stored.
type AdminAction struct {
	ID        string `json:"id" validate:"required"`
	AdminID   string `json:"adminId" validate:"required"`
	Action    string `json:"action" validate:"required"`
	TargetID  string `json:"targetId" validate:"required"`
	Timestamp string `json:"timestamp" validate:"required"`
}
