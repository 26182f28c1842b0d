package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-booking-api/internal/database"
	"github.com/iliyamo/ticket-booking-api/internal/model"
)

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	ctx := context.Background()
	store, err := database.Open(ctx, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, database.EnsureSchema(ctx, store))
	return store
}

func strp(s string) *string { return &s }

func TestUserRepoCRUD(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(newTestStore(t))

	u := &model.User{ID: "u1", Email: "a@example.com", Name: "Alice"}
	require.NoError(t, users.Create(ctx, u))
	assert.Equal(t, model.DefaultUserRole, u.Role)
	require.NotNil(t, u.CreatedAt)

	got, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, u.CreatedAt.Unix(), got.CreatedAt.Unix())

	upd := &model.User{ID: "u1", Email: "alice@example.com", Name: "Alice B", Role: "admin"}
	require.NoError(t, users.Update(ctx, upd))
	assert.Equal(t, "admin", upd.Role)
	assert.Equal(t, got.CreatedAt.Unix(), upd.CreatedAt.Unix())

	require.NoError(t, users.Delete(ctx, "u1"))
	_, err = users.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepoMissingRows(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(newTestStore(t))

	assert.ErrorIs(t, users.Update(ctx, &model.User{ID: "nope", Email: "x@example.com", Name: "X"}), ErrNotFound)
	assert.ErrorIs(t, users.Delete(ctx, "nope"), ErrNotFound)
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(newTestStore(t))

	require.NoError(t, users.Create(ctx, &model.User{ID: "u1", Email: "a@example.com", Name: "A"}))
	require.NoError(t, users.Create(ctx, &model.User{ID: "u2", Email: "b@example.com", Name: "B"}))

	err := users.Create(ctx, &model.User{ID: "u3", Email: "a@example.com", Name: "C"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "UNIQUE")

	err = users.Create(ctx, &model.User{ID: "u1", Email: "c@example.com", Name: "C"})
	assert.True(t, IsValidation(err))

	// a rejected write leaves nothing behind
	list, err := users.List(ctx, model.DefaultPage())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func seedBookings(t *testing.T, store *database.Store) *BookingRepo {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, NewUserRepo(store).Create(ctx, &model.User{ID: "u1", Email: "a@example.com", Name: "A"}))
	bookings := NewBookingRepo(store)
	require.NoError(t, bookings.Create(ctx, &model.Booking{ID: "b1", UserID: "u1", Status: "confirmed"}))
	require.NoError(t, bookings.Create(ctx, &model.Booking{ID: "b2", UserID: "u1", RoomID: strp("r1")}))
	require.NoError(t, bookings.Create(ctx, &model.Booking{ID: "b3", UserID: "u1", Status: "Confirmed", SeatID: strp("s9")}))
	return bookings
}

func TestBookingRepoPaging(t *testing.T) {
	ctx := context.Background()
	bookings := seedBookings(t, newTestStore(t))

	page, err := bookings.List(ctx, model.BookingFilter{}, model.Page{Limit: 1, Offset: 0})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b1", page[0].ID)

	page, err = bookings.List(ctx, model.BookingFilter{}, model.Page{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b3", page[0].ID)

	page, err = bookings.List(ctx, model.BookingFilter{}, model.Page{Limit: 1, Offset: 3})
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.NotNil(t, page)
}

func TestBookingRepoStatusFilter(t *testing.T) {
	ctx := context.Background()
	bookings := seedBookings(t, newTestStore(t))

	list, err := bookings.List(ctx, model.BookingFilter{Status: "confirmed"}, model.DefaultPage())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b1", list[0].ID)

	list, err = bookings.List(ctx, model.BookingFilter{Status: "pending"}, model.DefaultPage())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b2", list[0].ID)
}

func TestBookingRepoUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	bookings := seedBookings(t, newTestStore(t))

	before, err := bookings.GetByID(ctx, "b2")
	require.NoError(t, err)
	require.NotNil(t, before.RoomID)
	assert.Equal(t, "r1", *before.RoomID)
	assert.Nil(t, before.SeatID)
	assert.Equal(t, model.DefaultBookingStatus, before.Status)

	time.Sleep(20 * time.Millisecond)
	upd := &model.Booking{ID: "b2", UserID: "u1", SeatID: strp("s1"), Status: "confirmed"}
	require.NoError(t, bookings.Update(ctx, upd))
	assert.Nil(t, upd.RoomID)
	require.NotNil(t, upd.SeatID)
	assert.Equal(t, "s1", *upd.SeatID)
	assert.Equal(t, "confirmed", upd.Status)
	assert.Equal(t, before.CreatedAt.UnixMilli(), upd.CreatedAt.UnixMilli())
	require.NotNil(t, upd.UpdatedAt)
	assert.True(t, upd.UpdatedAt.After(*before.UpdatedAt), "updated_at %s not after %s", upd.UpdatedAt, before.UpdatedAt)

	assert.ErrorIs(t, bookings.Update(ctx, &model.Booking{ID: "zz", UserID: "u1"}), ErrNotFound)

	deleted, err := bookings.Delete(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, "u1", deleted.UserID)
	_, err = bookings.Delete(ctx, "b2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentRepo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedBookings(t, store)
	payments := NewPaymentRepo(store)

	p := &model.Payment{ID: "p1", BookingID: "b1", Amount: 49.5, Currency: "USD"}
	require.NoError(t, payments.Create(ctx, p))
	assert.Equal(t, model.DefaultPaymentStatus, p.Status)
	require.NotNil(t, p.CreatedAt)

	got, err := payments.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 49.5, got.Amount)
	assert.Equal(t, "USD", got.Currency)

	assert.True(t, IsValidation(payments.Create(ctx, &model.Payment{ID: "p1", BookingID: "b1", Amount: 1, Currency: "USD"})))

	_, err = payments.GetByID(ctx, "p2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotificationRepo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := NewUserRepo(store)
	require.NoError(t, users.Create(ctx, &model.User{ID: "u1", Email: "a@example.com", Name: "A"}))
	require.NoError(t, users.Create(ctx, &model.User{ID: "u2", Email: "b@example.com", Name: "B"}))
	notes := NewNotificationRepo(store)

	require.NoError(t, notes.Create(ctx, &model.Notification{ID: "n1", UserID: "u1", Type: "booking.created", Message: "hi"}))
	require.NoError(t, notes.Create(ctx, &model.Notification{ID: "n2", UserID: "u2", Type: "booking.created", Message: "yo"}))

	all, err := notes.List(ctx, model.NotificationFilter{}, model.DefaultPage())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := notes.List(ctx, model.NotificationFilter{UserID: "u2"}, model.DefaultPage())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "n2", mine[0].ID)
	assert.NotNil(t, mine[0].CreatedAt)
}

func TestNullTimeScan(t *testing.T) {
	var nt nullTime
	require.NoError(t, nt.Scan("2024-01-01 10:20:30.123"))
	assert.True(t, nt.Valid)
	assert.Equal(t, 123, nt.Time.Nanosecond()/1e6)

	require.NoError(t, nt.Scan([]byte("2024-01-01T10:20:30Z")))
	assert.Equal(t, 10, nt.Time.Hour())

	require.NoError(t, nt.Scan(nil))
	assert.Nil(t, nt.ptr())

	assert.Error(t, nt.Scan(42))
	assert.Error(t, nt.Scan("yesterday"))
}
