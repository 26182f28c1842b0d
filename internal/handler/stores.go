package handler

import (
	"context"

	"github.com/iliyamo/ticket-booking-api/internal/model"
)

// The repository methods each handler depends on.  *repository.UserRepo
// and friends satisfy these.

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, page model.Page) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
}

type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, f model.BookingFilter, page model.Page) ([]model.Booking, error)
	Update(ctx context.Context, b *model.Booking) error
	Delete(ctx context.Context, id string) (*model.Booking, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) error
	GetByID(ctx context.Context, id string) (*model.Payment, error)
}

type NotificationLister interface {
	List(ctx context.Context, f model.NotificationFilter, page model.Page) ([]model.Notification, error)
}
