package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/devapi/middleware"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
)

type AuthHandler struct {
	store     *store.Store
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(st *store.Store, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{store: st, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a user account and returns a token for it.
//
// @Summary      Register a user account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RegisterRequest  true  "Account details"
// @Success      201   {object}  domain.AuthResponse
// @Failure      400   {object}  ErrorBody
// @Failure      409   {object}  MessageBody
// @Failure      422   {object}  MessageBody
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req domain.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.store.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusCreated, user, middleware.RoleUser)
}

// Login authenticates a user account.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.LoginRequest  true  "Credentials"
// @Success      200   {object}  domain.AuthResponse
// @Failure      400   {object}  MessageBody
// @Failure      403   {object}  MessageBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, false)
}

// AdminLogin authenticates an administrator account.
//
// @Summary      Administrator login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.LoginRequest  true  "Credentials"
// @Success      200   {object}  domain.AuthResponse
// @Failure      400   {object}  MessageBody
// @Router       /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, true)
}

func (h *AuthHandler) login(c echo.Context, admin bool) error {
	var req domain.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.store.Authenticate(c.Request().Context(), req.Email, req.Password, admin)
	if err != nil {
		return err
	}
	role := middleware.RoleUser
	if admin {
		role = middleware.RoleAdmin
	}
	return h.respond(c, http.StatusOK, user, role)
}

func (h *AuthHandler) respond(c echo.Context, status int, user *domain.User, role string) error {
	token, err := middleware.IssueToken(h.jwtSecret, middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   role,
	}, h.tokenTTL)
	if err != nil {
		return err
	}
	return c.JSON(status, domain.AuthResponse{
		Token:  token,
		Type:   "Bearer",
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   role,
	})
}
