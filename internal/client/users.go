package client

import (
	"context"
	"net/http"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

// UsersAPI reads and edits user profiles.
type UsersAPI struct{ c *Client }

func (u UsersAPI) Get(ctx context.Context, userID int) (*domain.User, error) {
	var out domain.User
	if err := u.c.DispatchInto(ctx, Request{Path: "/users/" + seg(userID), Role: domain.RoleUser, JSON: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u UsersAPI) UpdateProfile(ctx context.Context, userID int, req domain.UpdateUserRequest) (*domain.User, error) {
	if err := u.c.validate.Validate(&req); err != nil {
		return nil, err
	}
	var out domain.User
	if err := u.c.DispatchInto(ctx, Request{
		Method: http.MethodPut,
		Path:   "/users/" + seg(userID),
		Body:   req,
		Role:   domain.RoleUser,
		JSON:   true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u UsersAPI) ChangePassword(ctx context.Context, userID int, req domain.ChangePasswordRequest) (*domain.Message, error) {
	if err := u.c.validate.Validate(&req); err != nil {
		return nil, err
	}
	var out domain.Message
	if err := u.c.DispatchInto(ctx, Request{
		Method: http.MethodPost,
		Path:   "/users/" + seg(userID) + "/change-password",
		Body:   req,
		Role:   domain.RoleUser,
		JSON:   true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
