package client

import (
	"context"
	"net/url"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

// BooksAPI reads public listings.
type BooksAPI struct{ c *Client }

// List returns every approved listing.
func (b BooksAPI) List(ctx context.Context) ([]domain.BookDetail, error) {
	var out []domain.BookDetail
	err := b.c.DispatchInto(ctx, Request{Path: "/books", Role: domain.RoleUser, JSON: true}, &out)
	return out, err
}

// Get returns one listing by book ID.
func (b BooksAPI) Get(ctx context.Context, bookID int) (*domain.BookDetail, error) {
	var out domain.BookDetail
	if err := b.c.DispatchInto(ctx, Request{Path: "/books/" + seg(bookID), Role: domain.RoleUser, JSON: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search passes the filters through as a query string. It never sends
// credentials, so results are always the guest view.
func (b BooksAPI) Search(ctx context.Context, params domain.BookSearch) ([]domain.BookDetail, error) {
	q := url.Values{}
	for k, v := range map[string]string{
		"title":    params.Title,
		"author":   params.Author,
		"province": params.Province,
		"district": params.District,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}

	var out []domain.BookDetail
	err := b.c.DispatchInto(ctx, Request{Path: "/books/search", Query: q}, &out)
	return out, err
}

// ByProvince returns listings located in province.
func (b BooksAPI) ByProvince(ctx context.Context, province string) ([]domain.BookDetail, error) {
	var out []domain.BookDetail
	err := b.c.DispatchInto(ctx, Request{
		Path: "/books/province/" + url.PathEscape(province),
		Role: domain.RoleUser,
		JSON: true,
	}, &out)
	return out, err
}

// CategoriesAPI reads the public category list.
type CategoriesAPI struct{ c *Client }

// List returns every category.
func (cat CategoriesAPI) List(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := cat.c.DispatchInto(ctx, Request{Path: "/categories", Role: domain.RoleUser, JSON: true}, &out)
	return out, err
}
