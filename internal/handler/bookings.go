package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/ticket-booking-api/internal/model"
	"github.com/iliyamo/ticket-booking-api/internal/queue"
)

// HeaderIdempotencyKey is accepted on booking creation.  It is logged and
// otherwise ignored.
const HeaderIdempotencyKey = "Idempotency-Key"

// BookingHandler serves /bookings.  Every successful write publishes a
// booking event.
type BookingHandler struct {
	Bookings BookingStore
	Events   queue.Publisher
	Log      *logrus.Logger
}

func NewBookingHandler(bookings BookingStore, events queue.Publisher, log *logrus.Logger) *BookingHandler {
	if bookings == nil || events == nil || log == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Events: events, Log: log}
}

// List handles GET /bookings?status=&limit=&offset=.  The status filter is
// an exact, case-sensitive match.
func (h *BookingHandler) List(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	filter := model.BookingFilter{Status: c.QueryParam("status")}
	bookings, err := h.Bookings.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, newBookingResponse(&bookings[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	if key := c.Request().Header.Get(HeaderIdempotencyKey); key != "" {
		h.Log.WithField("idempotency_key", key).Debug("booking create with idempotency key")
	}
	var req BookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	b := req.toModel()
	ctx := c.Request().Context()
	if err := h.Bookings.Create(ctx, b); err != nil {
		return storeError(err, "booking")
	}
	publish(ctx, h.Events, h.Log, queue.BookingEvent(queue.EventBookingCreated, b))
	return c.JSON(http.StatusCreated, newBookingResponse(b))
}

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.Bookings.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err, "booking")
	}
	return c.JSON(http.StatusOK, newBookingResponse(b))
}

// Update handles PUT /bookings/:id.  All mutable fields are replaced;
// omitted optional fields become null and an omitted status resets to
// the default.
func (h *BookingHandler) Update(c echo.Context) error {
	var req BookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.ID = c.Param("id")
	if err := validate(c, &req); err != nil {
		return err
	}
	b := req.toModel()
	ctx := c.Request().Context()
	if err := h.Bookings.Update(ctx, b); err != nil {
		return storeError(err, "booking")
	}
	publish(ctx, h.Events, h.Log, queue.BookingEvent(queue.EventBookingUpdated, b))
	return c.JSON(http.StatusOK, newBookingResponse(b))
}

// Cancel handles DELETE /bookings/:id.  The row is removed.
func (h *BookingHandler) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	b, err := h.Bookings.Delete(ctx, c.Param("id"))
	if err != nil {
		return storeError(err, "booking")
	}
	publish(ctx, h.Events, h.Log, queue.BookingEvent(queue.EventBookingCancelled, b))
	return c.NoContent(http.StatusNoContent)
}

// publish sends ev after the write has committed.  A failure is logged
// and never reaches the client.
func publish(ctx context.Context, events queue.Publisher, log *logrus.Logger, ev queue.Event) {
	if err := events.Publish(ctx, ev); err != nil {
		log.WithFields(logrus.Fields{"event": ev.Type, "booking_id": ev.BookingID}).
			WithError(err).Warn("event not published")
	}
}
