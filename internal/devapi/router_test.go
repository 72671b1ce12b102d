package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/devapi/middleware"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		key  string
		msg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), 401, "error", "invalid token"},
		{"validation", fmt.Errorf("%w: name is required", domain.ErrValidation), 422, "message", "name is required"},
		{"invalid input", fmt.Errorf("%w: unknown category 9", store.ErrInvalidInput), 400, "message", "unknown category 9"},
		{"not found", fmt.Errorf("post %w", store.ErrNotFound), 404, "message", "post not found"},
		{"forbidden", store.ErrForbidden, 403, "message", store.ErrForbidden.Error()},
		{"inactive", store.ErrAccountInactive, 403, "message", store.ErrAccountInactive.Error()},
		{"credentials", store.ErrInvalidCredentials, 400, "message", store.ErrInvalidCredentials.Error()},
		{"conflict", store.ErrCategoryInUse, 409, "message", store.ErrCategoryInUse.Error()},
		{"unexpected", errors.New("db exploded"), 500, "message", "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body[tc.key] != tc.msg {
				t.Fatalf("expected %s=%q, got %v", tc.key, tc.msg, body)
			}
		})
	}
}

func newTestRouter(t *testing.T, basePath string) *echo.Echo {
	t.Helper()
	st := store.New(store.Options{HashCost: bcrypt.MinCost})
	if err := st.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return NewRouter(st, Options{JWTSecret: "secret", TokenTTL: time.Hour, BasePath: basePath, Logger: zerolog.Nop()})
}

func serve(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Routes(t *testing.T) {
	e := newTestRouter(t, "")
	userToken, _ := middleware.IssueToken("secret", middleware.Claims{UserID: 2, Role: middleware.RoleUser}, time.Hour)
	adminToken, _ := middleware.IssueToken("secret", middleware.Claims{UserID: 1, Role: middleware.RoleAdmin}, time.Hour)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		code   int
	}{
		{"health", http.MethodGet, "/health", "", 200},
		{"metrics", http.MethodGet, "/metrics", "", 200},
		{"swagger ui", http.MethodGet, "/swagger/index.html", "", 200},
		{"swagger doc", http.MethodGet, "/swagger/doc.json", "", 200},
		{"books as guest", http.MethodGet, "/api/books", "", 200},
		{"books with bad token", http.MethodGet, "/api/books", "garbage", 200},
		{"categories", http.MethodGet, "/api/categories", "", 200},
		{"my posts needs auth", http.MethodGet, "/api/my-posts", "", 401},
		{"my posts as user", http.MethodGet, "/api/my-posts", userToken, 200},
		{"my posts as admin", http.MethodGet, "/api/my-posts", adminToken, 403},
		{"admin as guest", http.MethodGet, "/api/admin/posts", "", 401},
		{"admin as user", http.MethodGet, "/api/admin/posts", userToken, 403},
		{"admin as admin", http.MethodGet, "/api/admin/posts", adminToken, 200},
		{"unknown book", http.MethodGet, "/api/books/1", "", 404},
		{"unknown route", http.MethodGet, "/api/nope", "", 404},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(e, tc.method, tc.path, tc.token)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_GuestViewHidesContact(t *testing.T) {
	e := newTestRouter(t, "")
	userToken, _ := middleware.IssueToken("secret", middleware.Claims{UserID: 2, Role: middleware.RoleUser}, time.Hour)

	guest := serve(e, http.MethodGet, "/api/books/1001", "")
	if guest.Code != 200 || strings.Contains(guest.Body.String(), "contactInfo") {
		t.Fatalf("guest view leaked contact info: %d %s", guest.Code, guest.Body.String())
	}
	authed := serve(e, http.MethodGet, "/api/books/1001", userToken)
	if !strings.Contains(authed.Body.String(), `"contactInfo":"0900000000"`) {
		t.Fatalf("authenticated view missing contact info: %s", authed.Body.String())
	}
}

func TestRouter_CustomBasePath(t *testing.T) {
	e := newTestRouter(t, "/v2/")
	if rec := serve(e, http.MethodGet, "/v2/categories", ""); rec.Code != 200 {
		t.Fatalf("expected 200 under custom base, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/api/categories", ""); rec.Code != 404 {
		t.Fatalf("default base should not be mounted, got %d", rec.Code)
	}

	root := newTestRouter(t, "/")
	if rec := serve(root, http.MethodGet, "/categories", ""); rec.Code != 200 {
		t.Fatalf("expected 200 at root, got %d", rec.Code)
	}
}

func TestRouter_MetricsExposeRouteCounters(t *testing.T) {
	e := newTestRouter(t, "")
	serve(e, http.MethodGet, "/api/my-posts", "")

	rec := serve(e, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"sachcu_devapi_requests_total{",
		`url="/api/my-posts"`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestRouter_SwaggerDocListsRoutes(t *testing.T) {
	e := newTestRouter(t, "")
	rec := serve(e, http.MethodGet, "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json: %v", err)
	}
	if doc.BasePath != "/api" {
		t.Errorf("basePath = %q", doc.BasePath)
	}
	for _, p := range []string{"/auth/login", "/my-posts", "/admin/posts/{id}/status"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("doc.json missing path %s", p)
		}
	}
}
