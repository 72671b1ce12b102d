package client

import (
	"context"
	"net/http"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

// PostsAPI manages the logged-in user's listings.
type PostsAPI struct{ c *Client }

// Get returns one listing with full detail.
func (p PostsAPI) Get(ctx context.Context, postID int) (*domain.BookDetail, error) {
	var out domain.BookDetail
	if err := p.c.DispatchInto(ctx, Request{Path: "/posts/" + seg(postID), Role: domain.RoleUser, JSON: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create submits a new listing. It starts PENDING until an admin approves it.
func (p PostsAPI) Create(ctx context.Context, req domain.CreatePostRequest) (*domain.Post, error) {
	if err := p.c.validate.Validate(&req); err != nil {
		return nil, err
	}
	var out domain.Post
	if err := p.c.DispatchInto(ctx, Request{
		Method: http.MethodPost,
		Path:   "/posts",
		Body:   req,
		Role:   domain.RoleUser,
		JSON:   true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mine lists the caller's own listings in every status.
func (p PostsAPI) Mine(ctx context.Context) ([]domain.Post, error) {
	var out []domain.Post
	err := p.c.DispatchInto(ctx, Request{Path: "/my-posts", Role: domain.RoleUser, JSON: true}, &out)
	return out, err
}

// Update applies the non-nil fields of req to one of the caller's listings.
func (p PostsAPI) Update(ctx context.Context, postID int, req domain.UpdatePostRequest) (*domain.Post, error) {
	if err := p.c.validate.Validate(&req); err != nil {
		return nil, err
	}
	var out domain.Post
	if err := p.c.DispatchInto(ctx, Request{
		Method: http.MethodPut,
		Path:   "/my-posts/" + seg(postID),
		Body:   req,
		Role:   domain.RoleUser,
		JSON:   true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes one of the caller's listings.
func (p PostsAPI) Delete(ctx context.Context, postID int) error {
	return p.c.DispatchInto(ctx, Request{
		Method: http.MethodDelete,
		Path:   "/my-posts/" + seg(postID),
		Role:   domain.RoleUser,
	}, nil)
}

// MarkSold flags one of the caller's listings as sold.
func (p PostsAPI) MarkSold(ctx context.Context, postID int) (*domain.Post, error) {
	var out domain.Post
	if err := p.c.DispatchInto(ctx, Request{
		Method: http.MethodPut,
		Path:   "/my-posts/" + seg(postID) + "/sold",
		Role:   domain.RoleUser,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
