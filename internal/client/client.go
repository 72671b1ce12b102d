// Package client is the single choke point through which every consumer
// talks to the marketplace API: it builds headers from the session's
// credential slots, dispatches requests and normalizes responses into either
// decoded JSON or a *domain.APIError.
package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sachcu/marketplace-client/internal/core/ports"
	"github.com/sachcu/marketplace-client/internal/pkg/validate"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api.
	BaseURL string
	// Session supplies and stores credentials. Required.
	Session ports.CredentialStore
	// HTTP overrides the transport. Defaults to an *http.Client with Timeout.
	HTTP ports.HTTPDoer
	// Timeout bounds each request when HTTP is nil. Zero means no timeout;
	// callers cancel through the request context instead.
	Timeout time.Duration
	Logger  zerolog.Logger
	// ModerationWorkers sizes the bulk moderation queue.
	ModerationWorkers int
}

// Client dispatches requests to the marketplace API. It is safe for
// concurrent use; concurrent dispatches are independent and unordered.
type Client struct {
	base     string
	http     ports.HTTPDoer
	session  ports.CredentialStore
	log      zerolog.Logger
	validate *validate.Validator
	workers  int

	Auth       AuthAPI
	Books      BooksAPI
	Categories CategoriesAPI
	Posts      PostsAPI
	Users      UsersAPI
	Images     ImagesAPI
	Admin      AdminAPI
}

// New returns a Client for opts.
func New(opts Options) (*Client, error) {
	if opts.Session == nil {
		return nil, errors.New("client: session is required")
	}

	u, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("client: base url %q must be absolute http(s)", opts.BaseURL)
	}

	doer := opts.HTTP
	if doer == nil {
		doer = &http.Client{Timeout: opts.Timeout}
	}

	c := &Client{
		base:     strings.TrimRight(u.String(), "/"),
		http:     doer,
		session:  opts.Session,
		log:      opts.Logger,
		validate: validate.New(),
		workers:  opts.ModerationWorkers,
	}
	c.Auth = AuthAPI{c: c}
	c.Books = BooksAPI{c: c}
	c.Categories = CategoriesAPI{c: c}
	c.Posts = PostsAPI{c: c}
	c.Users = UsersAPI{c: c}
	c.Images = ImagesAPI{c: c}
	c.Admin = AdminAPI{c: c}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.base
}

func (c *Client) endpoint(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	s := c.base + path
	if len(query) > 0 {
		s += "?" + query.Encode()
	}
	return s
}

func seg(id int) string {
	return fmt.Sprintf("%d", id)
}
