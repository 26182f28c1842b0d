package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/ticket-booking-api/internal/repository"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeNotFound         = "not_found"
	CodeValidation       = "validation_error"
	CodeBadRequest       = "bad_request"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeTooManyRequests  = "too_many_requests"
	CodeInternal         = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// apiError is an error a handler has already classified.
type apiError struct {
	status int
	body   ErrorResponse
}

func (e *apiError) Error() string { return e.body.Message }

func notFound(what string) error {
	return &apiError{status: http.StatusNotFound, body: ErrorResponse{Code: CodeNotFound, Message: what + " not found"}}
}

func validationFailed(message, details string) error {
	return &apiError{status: http.StatusBadRequest, body: ErrorResponse{Code: CodeValidation, Message: message, Details: details}}
}

// storeError translates repository errors.  Anything unrecognised is
// returned unchanged and ends up as a 500.
func storeError(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(what)
	case repository.IsValidation(err):
		return validationFailed(err.Error(), "")
	default:
		return err
	}
}

// bindAndValidate decodes the request body into req and runs the
// registered validator on it.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := bind(c, req); err != nil {
		return err
	}
	return validate(c, req)
}

func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		details := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			details = fmt.Sprint(he.Message)
		}
		return validationFailed("invalid request body", details)
	}
	return nil
}

func validate(c echo.Context, req interface{}) error {
	err := c.Validate(req)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		return validationFailed("request validation failed", describe(fields))
	}
	return validationFailed("request validation failed", err.Error())
}

// ErrorHandler renders every error returned by a handler or middleware as
// an ErrorResponse.  Unclassified errors become a 500 whose cause is only
// logged.
func ErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := classify(err)
		if status >= http.StatusInternalServerError {
			log.WithFields(logrus.Fields{
				"method": c.Request().Method,
				"uri":    c.Request().RequestURI,
			}).WithError(err).Error("request failed")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			log.WithError(werr).Warn("writing error response failed")
		}
	}
}

func classify(err error) (int, ErrorResponse) {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.status, ae.body
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		body := ErrorResponse{Message: fmt.Sprint(he.Message)}
		switch {
		case he.Code == http.StatusNotFound:
			body.Code = CodeNotFound
		case he.Code == http.StatusMethodNotAllowed:
			body.Code = CodeMethodNotAllowed
		case he.Code == http.StatusTooManyRequests:
			body.Code = CodeTooManyRequests
		case he.Code >= http.StatusInternalServerError:
			return http.StatusInternalServerError, internalError()
		default:
			body.Code = CodeBadRequest
		}
		if he.Internal != nil && he.Code == http.StatusTooManyRequests {
			body.Details = he.Internal.Error()
		}
		return he.Code, body
	}

	return http.StatusInternalServerError, internalError()
}

func internalError() ErrorResponse {
	return ErrorResponse{Code: CodeInternal, Message: "internal server error"}
}
