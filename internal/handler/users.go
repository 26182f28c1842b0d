package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-booking-api/internal/model"
)

// Tokens returned by the login stub.  No credential is checked.
const (
	mockAccessToken  = "mock-access-token"
	mockRefreshToken = "mock-refresh-token"
)

// UserHandler serves /users.
type UserHandler struct {
	Users UserStore
}

func NewUserHandler(users UserStore) *UserHandler {
	if users == nil {
		panic("nil store passed to NewUserHandler")
	}
	return &UserHandler{Users: users}
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var req UserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	u := &model.User{ID: req.ID, Email: req.Email, Name: req.Name, Role: req.Role}
	if err := h.Users.Create(c.Request().Context(), u); err != nil {
		return storeError(err, "user")
	}
	return c.JSON(http.StatusCreated, newUserResponse(u))
}

// List handles GET /users?limit=&offset=.
func (h *UserHandler) List(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	users, err := h.Users.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.Users.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err, "user")
	}
	return c.JSON(http.StatusOK, newUserResponse(u))
}

// Update handles PUT /users/:id.  The id in the path is authoritative; an
// id in the body is ignored.
func (h *UserHandler) Update(c echo.Context) error {
	var req UserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.ID = c.Param("id")
	if err := validate(c, &req); err != nil {
		return err
	}
	u := &model.User{ID: req.ID, Email: req.Email, Name: req.Name, Role: req.Role}
	if err := h.Users.Update(c.Request().Context(), u); err != nil {
		return storeError(err, "user")
	}
	return c.JSON(http.StatusOK, newUserResponse(u))
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.Users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(err, "user")
	}
	return c.NoContent(http.StatusNoContent)
}

// Login handles POST /users/login.  It is a stub: the password is never
// checked and the user is synthesised from the email.
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  mockAccessToken,
		RefreshToken: mockRefreshToken,
		User: UserResponse{
			ID:    "u-" + req.Email,
			Email: req.Email,
			Name:  "User",
			Role:  model.DefaultUserRole,
		},
	})
}
