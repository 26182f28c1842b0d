package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-booking-api/internal/model"
)

// parsePage reads the limit and offset query parameters.  Missing values
// take the defaults; non-integers or values out of range are rejected.
func parsePage(c echo.Context) (model.Page, error) {
	page := model.DefaultPage()
	err := echo.QueryParamsBinder(c).
		Int("limit", &page.Limit).
		Int("offset", &page.Offset).
		BindError()
	if err != nil {
		return page, validationFailed("invalid paging parameters", err.Error())
	}
	if page.Limit < 1 || page.Limit > model.MaxLimit {
		return page, validationFailed("invalid paging parameters", fmt.Sprintf("limit must be between 1 and %d", model.MaxLimit))
	}
	if page.Offset < 0 {
		return page, validationFailed("invalid paging parameters", "offset must not be negative")
	}
	return page, nil
}
