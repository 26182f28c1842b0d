package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/ticket-booking-api/internal/model"
	"github.com/iliyamo/ticket-booking-api/internal/queue"
)

// PaymentHandler serves /payments.  Payments can be initiated and read,
// never changed.
type PaymentHandler struct {
	Payments PaymentStore
	Events   queue.Publisher
	Log      *logrus.Logger
}

func NewPaymentHandler(payments PaymentStore, events queue.Publisher, log *logrus.Logger) *PaymentHandler {
	if payments == nil || events == nil || log == nil {
		panic("nil dependency passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: payments, Events: events, Log: log}
}

// Create handles POST /payments.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req PaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p := &model.Payment{
		ID:        req.ID,
		BookingID: req.BookingID,
		Amount:    *req.Amount,
		Currency:  req.Currency,
		Status:    req.Status,
	}
	ctx := c.Request().Context()
	if err := h.Payments.Create(ctx, p); err != nil {
		return storeError(err, "payment")
	}
	publish(ctx, h.Events, h.Log, queue.PaymentEvent(p))
	return c.JSON(http.StatusCreated, newPaymentResponse(p))
}

// Get handles GET /payments/:id.
func (h *PaymentHandler) Get(c echo.Context) error {
	p, err := h.Payments.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err, "payment")
	}
	return c.JSON(http.StatusOK, newPaymentResponse(p))
}
