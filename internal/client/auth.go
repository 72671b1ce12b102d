package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

var errInvalidLogin = errors.New("invalid login response: missing token")

// AuthAPI covers registration, both logins and logout.
type AuthAPI struct{ c *Client }

// Register creates a user account. It does not log the user in.
func (a AuthAPI) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if err := a.c.validate.Validate(&req); err != nil {
		return nil, err
	}
	var out domain.AuthResponse
	if err := a.c.DispatchInto(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   req,
		Role:   domain.RoleUser,
		JSON:   true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates a user and stores the user credential.
func (a AuthAPI) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	data, err := a.login(ctx, "/auth/login", req)
	if err != nil {
		return nil, err
	}
	if err := a.c.session.StoreCredential(ctx, domain.RoleUser, data.Token, domain.Principal{
		UserID: data.UserID,
		Name:   data.Name,
		Email:  data.Email,
		Role:   domain.PrincipalUser,
	}); err != nil {
		return nil, err
	}
	return data, nil
}

// AdminLogin authenticates an administrator and stores the admin credential.
func (a AuthAPI) AdminLogin(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	data, err := a.login(ctx, "/auth/admin/login", req)
	if err != nil {
		return nil, err
	}
	if err := a.c.session.StoreCredential(ctx, domain.RoleAdmin, data.Token, domain.Principal{
		AdminID: data.UserID,
		Name:    data.Name,
		Email:   data.Email,
		Role:    domain.PrincipalAdmin,
	}); err != nil {
		return nil, err
	}
	return data, nil
}

func (a AuthAPI) login(ctx context.Context, path string, req domain.LoginRequest) (*domain.AuthResponse, error) {
	if err := a.c.validate.Validate(&req); err != nil {
		return nil, err
	}
	var out domain.AuthResponse
	if err := a.c.DispatchInto(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   req,
		Role:   domain.RoleUser,
		JSON:   true,
	}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &domain.APIError{
			Kind:    domain.KindParse,
			Message: errInvalidLogin.Error(),
			Status:  http.StatusOK,
			Err:     errInvalidLogin,
		}
	}
	return &out, nil
}

// LogoutUser drops the user credential.
func (a AuthAPI) LogoutUser(ctx context.Context) error {
	return a.c.session.ClearCredential(ctx, domain.RoleUser)
}

// LogoutAdmin drops the admin credential.
func (a AuthAPI) LogoutAdmin(ctx context.Context) error {
	return a.c.session.ClearCredential(ctx, domain.RoleAdmin)
}

// CurrentUser returns the cached user principal, if logged in.
func (a AuthAPI) CurrentUser(ctx context.Context) (*domain.Principal, bool, error) {
	return a.c.session.Principal(ctx, domain.RoleUser)
}

// CurrentAdmin returns the cached admin principal, if logged in.
func (a AuthAPI) CurrentAdmin(ctx context.Context) (*domain.Principal, bool, error) {
	return a.c.session.Principal(ctx, domain.RoleAdmin)
}
