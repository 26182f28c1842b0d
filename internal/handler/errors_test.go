package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/ticket-booking-api/internal/repository"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", storeError(fmt.Errorf("get: %w", repository.ErrNotFound), "booking"), http.StatusNotFound, CodeNotFound},
		{"validation", storeError(&repository.ValidationError{Err: errors.New("UNIQUE constraint failed")}, "user"), http.StatusBadRequest, CodeValidation},
		{"echo 404", echo.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"echo 405", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, CodeMethodNotAllowed},
		{"echo 415", echo.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, CodeBadRequest},
		{"echo 429", echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded").SetInternal(errors.New("retry after 2s")), http.StatusTooManyRequests, CodeTooManyRequests},
		{"plain", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestClassifyHidesInternalCause(t *testing.T) {
	_, body := classify(errors.New("dial tcp: secret-host"))
	assert.Equal(t, "internal server error", body.Message)
	assert.Empty(t, body.Details)
}

func TestClassifyRateLimitDetails(t *testing.T) {
	_, body := classify(echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded").SetInternal(errors.New("retry after 2s")))
	assert.Equal(t, "rate limit exceeded", body.Message)
	assert.Equal(t, "retry after 2s", body.Details)
}

func TestValidationStoreMessageIsKept(t *testing.T) {
	_, body := classify(storeError(&repository.ValidationError{Err: errors.New("UNIQUE constraint failed: users.email")}, "user"))
	assert.Equal(t, "UNIQUE constraint failed: users.email", body.Message)
}
