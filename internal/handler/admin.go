package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RecordAdminAction handles POST /admin/actions.  The action is validated
// and echoed back; nothing is persisted.
func RecordAdminAction(c echo.Context) error {
	var action AdminAction
	if err := bindAndValidate(c, &action); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, action)
}
