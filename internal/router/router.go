// Package router registers the HTTP routes of the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-booking-api/internal/handler"
)

// Handlers bundles the resource handlers served by the API.
type Handlers struct {
	Users         *handler.UserHandler
	Bookings      *handler.BookingHandler
	Payments      *handler.PaymentHandler
	Notifications *handler.NotificationHandler
}

// RegisterRoutes registers the unauthenticated service routes: the health
// check at / (aliased at /healthz) and the OpenAPI document.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Health)
	e.GET("/healthz", handler.Health)
	e.GET("/openapi.json", handler.OpenAPI)
}

// RegisterUsers registers /users.  The static /users/login route takes
// precedence over /users/:id.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler) {
	g := e.Group("/users")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.POST("/login", h.Login)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func RegisterBookings(e *echo.Echo, h *handler.BookingHandler) {
	g := e.Group("/bookings")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Cancel)
}

func RegisterPayments(e *echo.Echo, h *handler.PaymentHandler) {
	e.POST("/payments", h.Create)
	e.GET("/payments/:id", h.Get)
}

func RegisterNotifications(e *echo.Echo, h *handler.NotificationHandler) {
	e.GET("/notifications", h.List)
}

func RegisterAdmin(e *echo.Echo) {
	e.POST("/admin/actions", handler.RecordAdminAction)
}

// Register wires every route of the API.
func Register(e *echo.Echo, h Handlers) {
	RegisterRoutes(e)
	RegisterUsers(e, h.Users)
	RegisterBookings(e, h.Bookings)
	RegisterPayments(e, h.Payments)
	RegisterNotifications(e, h.Notifications)
	RegisterAdmin(e)
}
