package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
)

// UserHandler lets users read and edit their own profile.
type UserHandler struct {
	store *store.Store
}

func NewUserHandler(st *store.Store) *UserHandler {
	return &UserHandler{store: st}
}

// self resolves :id and rejects access to anyone else's profile.
func self(c echo.Context) (int, error) {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return 0, err
	}
	id, err := intParam(c, "id")
	if err != nil {
		return 0, err
	}
	if id != userID {
		return 0, store.ErrForbidden
	}
	return id, nil
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := self(c)
	if err != nil {
		return err
	}
	user, err := h.store.User(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := self(c)
	if err != nil {
		return err
	}
	var req domain.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.store.UpdateUser(id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	id, err := self(c)
	if err != nil {
		return err
	}
	var req domain.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.store.ChangePassword(c.Request().Context(), id, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.Message{Message: "password changed", Success: true})
}
