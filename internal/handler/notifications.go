package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-booking-api/internal/model"
)

type NotificationHandler struct {
	Notifications NotificationLister
}

func NewNotificationHandler(notes NotificationLister) *NotificationHandler {
	if notes == nil {
		panic("nil store passed to NewNotificationHandler")
	}
	return &NotificationHandler{Notifications: notes}
}

// List handles GET /notifications?userId=&limit=&offset=.
func (h *NotificationHandler) List(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	filter := model.NotificationFilter{UserID: c.QueryParam("userId")}
	notes, err := h.Notifications.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	out := make([]NotificationResponse, 0, len(notes))
	for i := range notes {
		out = append(out, newNotificationResponse(&notes[i]))
	}
	return c.JSON(http.StatusOK, out)
}
