package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-booking-api/internal/openapi"
)

// OpenAPI serves the API description.
func OpenAPI(c echo.Context) error {
	return c.JSON(http.StatusOK, openapi.Document())
}
