//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/iliyamo/ticket-booking-api/internal/database"
	"github.com/iliyamo/ticket-booking-api/internal/model"
)

// setupPostgres starts a PostgreSQL container and returns a store with the
// schema applied.
func setupPostgres(t *testing.T) *database.Store {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("tickets"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := database.Open(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.Equal(t, database.DialectPostgres, store.Dialect())

	require.NoError(t, database.EnsureSchema(ctx, store))
	require.NoError(t, database.EnsureSchema(ctx, store), "schema init must be repeatable")
	return store
}

func TestPostgresRepositories(t *testing.T) {
	ctx := context.Background()
	store := setupPostgres(t)
	users := NewUserRepo(store)
	bookings := NewBookingRepo(store)
	payments := NewPaymentRepo(store)
	notes := NewNotificationRepo(store)

	u := &model.User{ID: "u1", Email: "a@example.com", Name: "Alice"}
	require.NoError(t, users.Create(ctx, u))
	require.NotNil(t, u.CreatedAt)
	assert.Equal(t, model.DefaultUserRole, u.Role)

	err := users.Create(ctx, &model.User{ID: "u2", Email: "a@example.com", Name: "Dup"})
	assert.True(t, IsValidation(err), "duplicate email: %v", err)

	t.Run("foreign keys are enforced", func(t *testing.T) {
		err := bookings.Create(ctx, &model.Booking{ID: "bx", UserID: "ghost"})
		assert.True(t, IsValidation(err), "unknown user: %v", err)
	})

	for _, id := range []string{"b1", "b2", "b3"} {
		require.NoError(t, bookings.Create(ctx, &model.Booking{ID: id, UserID: "u1", Status: "confirmed"}))
	}

	t.Run("paging", func(t *testing.T) {
		got, err := bookings.List(ctx, model.BookingFilter{}, model.Page{Limit: 1, Offset: 2})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "b3", got[0].ID)
	})

	t.Run("status filter is case-sensitive", func(t *testing.T) {
		got, err := bookings.List(ctx, model.BookingFilter{Status: "Confirmed"}, model.DefaultPage())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("update refreshes updated_at", func(t *testing.T) {
		b := &model.Booking{ID: "b1", UserID: "u1", Status: "cancelled"}
		require.NoError(t, bookings.Update(ctx, b))
		require.NotNil(t, b.UpdatedAt)
		assert.Equal(t, "cancelled", b.Status)
	})

	p := &model.Payment{ID: "p1", BookingID: "b2", Amount: 42.5, Currency: "EUR"}
	require.NoError(t, payments.Create(ctx, p))
	assert.Equal(t, model.DefaultPaymentStatus, p.Status)

	require.NoError(t, notes.Create(ctx, &model.Notification{ID: "n1", UserID: "u1", Type: "booking.created", Message: "hi"}))
	list, err := notes.List(ctx, model.NotificationFilter{UserID: "u1"}, model.DefaultPage())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	t.Run("delete referenced user fails", func(t *testing.T) {
		err := users.Delete(ctx, "u1")
		assert.True(t, IsValidation(err), "referenced user: %v", err)
	})

	deleted, err := bookings.Delete(ctx, "b3")
	require.NoError(t, err)
	assert.Equal(t, "b3", deleted.ID)
	_, err = bookings.GetByID(ctx, "b3")
	assert.ErrorIs(t, err, ErrNotFound)
}
