package client

import (
	"context"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/core/ports"
	"github.com/sachcu/marketplace-client/internal/infrastructure/queue"
)

// AdminAPI is the moderation surface. Every call sends the admin credential.
type AdminAPI struct{ c *Client }

var _ ports.PostModerator = AdminAPI{}

// Overview is a dashboard snapshot.
type Overview struct {
	Posts      []domain.Post     `json:"posts"`
	Users      []domain.User     `json:"users"`
	Categories []domain.Category `json:"categories"`
}

func (a AdminAPI) get(ctx context.Context, path string, out any) error {
	return a.c.DispatchInto(ctx, Request{Path: path, Role: domain.RoleAdmin, JSON: true}, out)
}

func (a AdminAPI) put(ctx context.Context, path string, body, out any) error {
	return a.c.DispatchInto(ctx, Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
		Role:   domain.RoleAdmin,
		JSON:   true,
	}, out)
}

// Posts lists every listing regardless of status.
func (a AdminAPI) Posts(ctx context.Context) ([]domain.Post, error) {
	var out []domain.Post
	err := a.get(ctx, "/admin/posts", &out)
	return out, err
}

// PostsByStatus lists listings in one moderation state.
func (a AdminAPI) PostsByStatus(ctx context.Context, status string) ([]domain.Post, error) {
	var out []domain.Post
	err := a.get(ctx, "/admin/posts/status/"+url.PathEscape(status), &out)
	return out, err
}

// UpdatePostStatus moves one listing to status.
func (a AdminAPI) UpdatePostStatus(ctx context.Context, postID int, status domain.PostStatus) (*domain.Post, error) {
	var out domain.Post
	if err := a.put(ctx, "/admin/posts/"+seg(postID)+"/status", domain.StatusRequest{Status: string(status)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a AdminAPI) Users(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := a.get(ctx, "/admin/users", &out)
	return out, err
}

func (a AdminAPI) User(ctx context.Context, userID int) (*domain.User, error) {
	var out domain.User
	if err := a.get(ctx, "/admin/users/"+seg(userID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a AdminAPI) UpdateUserStatus(ctx context.Context, userID int, status domain.UserStatus) (*domain.User, error) {
	var out domain.User
	if err := a.put(ctx, "/admin/users/"+seg(userID)+"/status", domain.StatusRequest{Status: string(status)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a AdminAPI) DeleteUser(ctx context.Context, userID int) error {
	return a.c.DispatchInto(ctx, Request{
		Method: http.MethodDelete,
		Path:   "/admin/users/" + seg(userID),
		Role:   domain.RoleAdmin,
	}, nil)
}

func (a AdminAPI) Reports(ctx context.Context) ([]domain.Report, error) {
	var out []domain.Report
	err := a.get(ctx, "/admin/reports", &out)
	return out, err
}

func (a AdminAPI) UpdateReportStatus(ctx context.Context, reportID int, status domain.ReportStatus) (*domain.Report, error) {
	var out domain.Report
	if err := a.put(ctx, "/admin/reports/"+seg(reportID)+"/status", domain.StatusRequest{Status: string(status)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a AdminAPI) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	req := domain.CategoryRequest{CategoryName: name}
	if err := a.c.validate.Validate(&req); err != nil {
		return nil, err
	}
	var out domain.Category
	if err := a.c.DispatchInto(ctx, Request{
		Method: http.MethodPost,
		Path:   "/admin/categories",
		Body:   req,
		Role:   domain.RoleAdmin,
		JSON:   true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory renames a category. The endpoint may answer with a bare
// string; the request then counts as a success and the result holds the
// values that were sent.
func (a AdminAPI) UpdateCategory(ctx context.Context, categoryID int, name string) (*domain.Category, error) {
	req := domain.CategoryRequest{CategoryName: name}
	if err := a.c.validate.Validate(&req); err != nil {
		return nil, err
	}
	out := domain.Category{CategoryID: categoryID, CategoryName: name}
	if err := a.c.DispatchInto(ctx, Request{
		Method:  http.MethodPut,
		Path:    "/admin/categories/" + seg(categoryID),
		Body:    req,
		Role:    domain.RoleAdmin,
		JSON:    true,
		Lenient: true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category, tolerating a non-JSON success body.
func (a AdminAPI) DeleteCategory(ctx context.Context, categoryID int) error {
	return a.c.DispatchInto(ctx, Request{
		Method:  http.MethodDelete,
		Path:    "/admin/categories/" + seg(categoryID),
		Role:    domain.RoleAdmin,
		Lenient: true,
	}, nil)
}

// Overview fetches posts, users and categories concurrently. The first
// failure cancels the other fetches and is returned.
func (a AdminAPI) Overview(ctx context.Context) (*Overview, error) {
	var ov Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := a.Posts(gctx)
		ov.Posts = posts
		return err
	})
	g.Go(func() error {
		users, err := a.Users(gctx)
		ov.Users = users
		return err
	})
	g.Go(func() error {
		return a.get(gctx, "/categories", &ov.Categories)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}

// ModeratePosts applies tasks through a sharded worker pool. Updates to the
// same post run in the order given; the returned slice has one result per
// task in completion order. The error is non-nil only when ctx ended first.
func (a AdminAPI) ModeratePosts(ctx context.Context, tasks []ports.ModerationTask) ([]ports.ModerationResult, error) {
	d := queue.NewDispatcher(a.c.workers, a, a.c.log)
	d.Start(ctx)
	for _, t := range tasks {
		d.Enqueue(t)
	}
	d.Close()
	return d.Results(), ctx.Err()
}
