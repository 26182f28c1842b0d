// Package server assembles the echo instance: middleware chain, request
// validation, error rendering and routes.
package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/ticket-booking-api/internal/config"
	"github.com/iliyamo/ticket-booking-api/internal/database"
	"github.com/iliyamo/ticket-booking-api/internal/handler"
	"github.com/iliyamo/ticket-booking-api/internal/middleware"
	"github.com/iliyamo/ticket-booking-api/internal/queue"
	"github.com/iliyamo/ticket-booking-api/internal/repository"
	"github.com/iliyamo/ticket-booking-api/internal/router"
)

// Deps are the process-wide objects the server is built from.  Redis and
// Events may be nil.
type Deps struct {
	Config    config.Config
	RateLimit config.RateLimitConfig
	Log       *logrus.Logger
	Store     *database.Store
	Redis     *redis.Client
	Events    queue.Publisher
}

// New returns a ready-to-start echo instance.
func New(d Deps) *echo.Echo {
	if d.Events == nil {
		d.Events = queue.NopPublisher{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = d.Config.Reload
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(d.Log)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(corsConfig(d.Config.AllowedOrigins)))
	e.Use(middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log))

	router.Register(e, router.Handlers{
		Users:         handler.NewUserHandler(repository.NewUserRepo(d.Store)),
		Bookings:      handler.NewBookingHandler(repository.NewBookingRepo(d.Store), d.Events, d.Log),
		Payments:      handler.NewPaymentHandler(repository.NewPaymentRepo(d.Store), d.Events, d.Log),
		Notifications: handler.NewNotificationHandler(repository.NewNotificationRepo(d.Store)),
	})
	return e
}

func corsConfig(origins []string) echomw.CORSConfig {
	cfg := echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}
	for _, o := range origins {
		if o == "*" {
			return cfg
		}
	}
	cfg.AllowCredentials = true
	return cfg
}

func requestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
			})
			switch {
			case v.Status >= http.StatusInternalServerError:
				entry.WithError(v.Error).Error("request")
			case v.Status >= http.StatusBadRequest:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
			return nil
		},
	})
}
