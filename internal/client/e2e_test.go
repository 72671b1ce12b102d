package client_test

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sachcu/marketplace-client/internal/client"
	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/core/ports"
	"github.com/sachcu/marketplace-client/internal/core/service"
	"github.com/sachcu/marketplace-client/internal/devapi"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
	"github.com/sachcu/marketplace-client/internal/infrastructure/kv"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newDevClient(t *testing.T) (*client.Client, *service.SessionService) {
	t.Helper()
	st := store.New(store.Options{HashCost: bcrypt.MinCost})
	if err := st.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	srv := httptest.NewServer(devapi.NewRouter(st, devapi.Options{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		Logger:    zerolog.Nop(),
	}))
	t.Cleanup(srv.Close)

	session := service.NewSessionService(kv.NewMemoryStore(), zerolog.Nop())
	c, err := client.New(client.Options{
		BaseURL:           srv.URL + devapi.DefaultBasePath,
		Session:           session,
		Timeout:           5 * time.Second,
		Logger:            zerolog.Nop(),
		ModerationWorkers: 2,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, session
}

func loginAdmin(t *testing.T, c *client.Client) {
	t.Helper()
	if _, err := c.Auth.AdminLogin(context.Background(), domain.LoginRequest{
		Email:    store.SeedAdminEmail,
		Password: store.SeedAdminPassword,
	}); err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
}

func TestEndToEnd_ListingLifecycle(t *testing.T) {
	c, session := newDevClient(t)
	ctx := context.Background()

	if _, err := c.Auth.Register(ctx, domain.RegisterRequest{
		Name: "Lan", Email: "lan@example.com", Password: "secret1", Province: "Da Nang",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, ok, _ := session.GetCredential(ctx, domain.RoleUser); ok {
		t.Fatalf("register must not store a credential")
	}

	auth, err := c.Auth.Login(ctx, domain.LoginRequest{Email: "lan@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	p, ok, err := c.Auth.CurrentUser(ctx)
	if err != nil || !ok || p.UserID != auth.UserID || p.Role != domain.PrincipalUser {
		t.Fatalf("unexpected principal %+v ok=%v err=%v", p, ok, err)
	}

	cats, err := c.Categories.List(ctx)
	if err != nil || len(cats) == 0 {
		t.Fatalf("Categories.List: %v %v", cats, err)
	}

	post, err := c.Posts.Create(ctx, domain.CreatePostRequest{
		Title: "Dune", Author: "Frank Herbert", BookCondition: "Good", Price: 99000,
		PostDescription: "Paperback", ContactInfo: "0911", CategoryID: cats[0].CategoryID,
	})
	if err != nil {
		t.Fatalf("Posts.Create: %v", err)
	}
	if post.Status != domain.PostPending || post.Province != "Da Nang" {
		t.Fatalf("unexpected new post %+v", post)
	}

	mine, err := c.Posts.Mine(ctx)
	if err != nil || len(mine) != 1 || mine[0].PostID != post.PostID {
		t.Fatalf("Posts.Mine: %+v %v", mine, err)
	}

	loginAdmin(t, c)
	results, err := c.Admin.ModeratePosts(ctx, []ports.ModerationTask{{PostID: post.PostID, Status: domain.PostApproved}})
	if err != nil || len(results) != 1 || results[0].Err != nil {
		t.Fatalf("ModeratePosts: %+v %v", results, err)
	}

	books, err := c.Books.Search(ctx, domain.BookSearch{Title: "dune"})
	if err != nil || len(books) != 1 {
		t.Fatalf("Books.Search: %+v %v", books, err)
	}
	if books[0].ContactInfo != "" {
		t.Fatalf("search is a guest view; contact info leaked: %+v", books[0])
	}

	detail, err := c.Books.Get(ctx, books[0].BookID)
	if err != nil || detail.ContactInfo != "0911" || detail.UserName != "Lan" {
		t.Fatalf("Books.Get with credential: %+v %v", detail, err)
	}

	if _, err := c.Posts.MarkSold(ctx, post.PostID); err != nil {
		t.Fatalf("MarkSold: %v", err)
	}
	if err := c.Posts.Delete(ctx, post.PostID); err != nil {
		t.Fatalf("Posts.Delete: %v", err)
	}

	if err := c.Auth.LogoutUser(ctx); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}
	_, err = c.Posts.Mine(ctx)
	if err == nil || err.Error() != domain.UnauthorizedMessage {
		t.Fatalf("expected 401 after logout, got %v", err)
	}
	if _, ok, _ := c.Auth.CurrentAdmin(ctx); !ok {
		t.Fatalf("user logout must keep the admin session")
	}
}

func TestEndToEnd_ErrorMessages(t *testing.T) {
	c, _ := newDevClient(t)
	ctx := context.Background()

	_, err := c.Auth.Login(ctx, domain.LoginRequest{Email: store.SeedUserEmail, Password: "wrong"})
	if err == nil || err.Error() != store.ErrInvalidCredentials.Error() {
		t.Fatalf("expected message from body, got %v", err)
	}

	_, err = c.Auth.Register(ctx, domain.RegisterRequest{Name: "Dup", Email: store.SeedUserEmail, Password: "secret1"})
	if domain.StatusOf(err) != 409 || err.Error() != store.ErrEmailTaken.Error() {
		t.Fatalf("expected 409 email taken, got %v", err)
	}

	if _, err := c.Auth.Login(ctx, domain.LoginRequest{Email: store.SeedUserEmail, Password: store.SeedUserPassword}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = c.Posts.Get(ctx, 4242)
	if domain.StatusOf(err) != 404 || err.Error() != "post not found" {
		t.Fatalf("expected 404 post not found, got %v", err)
	}

	_, err = c.Admin.Posts(ctx)
	if err == nil || err.Error() != domain.UnauthorizedMessage {
		t.Fatalf("no admin credential stored; expected 401, got %v", err)
	}

	// A user token on an admin route is rejected by role.
	_, err = c.Dispatch(ctx, client.Request{Path: "/admin/posts", Role: domain.RoleUser})
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != domain.KindRequestFailed || apiErr.Status != 403 {
		t.Fatalf("expected 403, got %v", err)
	}
	if apiErr.Message != "forbidden" {
		t.Fatalf("expected message from error field, got %q", apiErr.Message)
	}
}

func TestEndToEnd_AdminSurface(t *testing.T) {
	c, _ := newDevClient(t)
	ctx := context.Background()
	loginAdmin(t, c)

	ov, err := c.Admin.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(ov.Posts) != 3 || len(ov.Users) != 1 || len(ov.Categories) != 3 {
		t.Fatalf("unexpected overview %d posts %d users %d categories", len(ov.Posts), len(ov.Users), len(ov.Categories))
	}

	pending, err := c.Admin.PostsByStatus(ctx, "pending")
	if err != nil || len(pending) != 1 || pending[0].Title != "Calculus" {
		t.Fatalf("PostsByStatus: %+v %v", pending, err)
	}

	cat, err := c.Admin.CreateCategory(ctx, "Poetry")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	updated, err := c.Admin.UpdateCategory(ctx, cat.CategoryID, "Poems")
	if err != nil {
		t.Fatalf("UpdateCategory with text body: %v", err)
	}
	if updated.CategoryID != cat.CategoryID || updated.CategoryName != "Poems" {
		t.Fatalf("unexpected updated category %+v", updated)
	}
	if err := c.Admin.DeleteCategory(ctx, cat.CategoryID); err != nil {
		t.Fatalf("DeleteCategory with text body: %v", err)
	}

	err = c.Admin.DeleteCategory(ctx, ov.Categories[0].CategoryID)
	if domain.StatusOf(err) != 409 {
		t.Fatalf("expected conflict deleting a category in use, got %v", err)
	}

	reports, err := c.Admin.Reports(ctx)
	if err != nil || len(reports) != 1 {
		t.Fatalf("Reports: %+v %v", reports, err)
	}
	r, err := c.Admin.UpdateReportStatus(ctx, reports[0].ReportID, domain.ReportResolved)
	if err != nil || r.Status != domain.ReportResolved {
		t.Fatalf("UpdateReportStatus: %+v %v", r, err)
	}

	u, err := c.Admin.UpdateUserStatus(ctx, ov.Users[0].ID, domain.UserSuspended)
	if err != nil || u.Status != domain.UserSuspended {
		t.Fatalf("UpdateUserStatus: %+v %v", u, err)
	}
	_, err = c.Auth.Login(ctx, domain.LoginRequest{Email: store.SeedUserEmail, Password: store.SeedUserPassword})
	if domain.StatusOf(err) != 403 {
		t.Fatalf("suspended login should be forbidden, got %v", err)
	}
}

func TestEndToEnd_ModerationOrdering(t *testing.T) {
	c, _ := newDevClient(t)
	ctx := context.Background()
	loginAdmin(t, c)

	tasks := []ports.ModerationTask{
		{PostID: 3, Status: domain.PostApproved},
		{PostID: 3, Status: domain.PostDeclined},
		{PostID: 1, Status: domain.PostSold},
		{PostID: 999, Status: domain.PostApproved},
	}
	results, err := c.Admin.ModeratePosts(ctx, tasks)
	if err != nil {
		t.Fatalf("ModeratePosts: %v", err)
	}
	if len(results) != len(tasks) {
		t.Fatalf("expected %d results, got %d", len(tasks), len(results))
	}
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			if r.PostID != 999 || domain.StatusOf(r.Err) != 404 {
				t.Fatalf("unexpected failure %+v", r)
			}
		}
	}
	if failed != 1 {
		t.Fatalf("expected one failure, got %d", failed)
	}

	declined, err := c.Admin.PostsByStatus(ctx, string(domain.PostDeclined))
	if err != nil || len(declined) != 1 || declined[0].PostID != 3 {
		t.Fatalf("last update for post 3 must win: %+v %v", declined, err)
	}
}

func TestEndToEnd_Images(t *testing.T) {
	c, _ := newDevClient(t)
	ctx := context.Background()

	_, err := c.Images.Upload(ctx, "cover.png", bytes.NewReader(pngHeader))
	if err == nil || err.Error() != domain.UnauthorizedMessage {
		t.Fatalf("upload without a credential should be 401, got %v", err)
	}

	if _, err := c.Auth.Login(ctx, domain.LoginRequest{Email: store.SeedUserEmail, Password: store.SeedUserPassword}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	up, err := c.Images.Upload(ctx, "cover.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !up.Success || up.FileType != "image/png" || !strings.HasSuffix(up.FileName, ".png") {
		t.Fatalf("unexpected upload %+v", up)
	}
	if !strings.HasPrefix(up.FileURL, devapi.DefaultBasePath+"/images/") {
		t.Fatalf("unexpected file url %q", up.FileURL)
	}

	_, err = c.Images.Upload(ctx, "notes.txt", strings.NewReader("plain text"))
	if domain.StatusOf(err) != 400 {
		t.Fatalf("expected 400 for non-image, got %v", err)
	}

	if err := c.Images.Delete(ctx, up.FileName); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Images.Delete(ctx, up.FileName); domain.StatusOf(err) != 404 {
		t.Fatalf("expected 404 on second delete, got %v", err)
	}
}

func TestEndToEnd_UserProfile(t *testing.T) {
	c, _ := newDevClient(t)
	ctx := context.Background()

	auth, err := c.Auth.Login(ctx, domain.LoginRequest{Email: store.SeedUserEmail, Password: store.SeedUserPassword})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	u, err := c.Users.UpdateProfile(ctx, auth.UserID, domain.UpdateUserRequest{Ward: "Dich Vong"})
	if err != nil || u.Ward != "Dich Vong" || u.Province != "Ha Noi" {
		t.Fatalf("UpdateProfile: %+v %v", u, err)
	}

	_, err = c.Users.Get(ctx, auth.UserID+100)
	if domain.StatusOf(err) != 403 {
		t.Fatalf("reading another profile should be forbidden, got %v", err)
	}

	_, err = c.Users.ChangePassword(ctx, auth.UserID, domain.ChangePasswordRequest{OldPassword: "nope", NewPassword: "newpass1"})
	if domain.StatusOf(err) != 400 {
		t.Fatalf("expected 400 on wrong old password, got %v", err)
	}
	if _, err := c.Users.ChangePassword(ctx, auth.UserID, domain.ChangePasswordRequest{
		OldPassword: store.SeedUserPassword, NewPassword: "newpass1",
	}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := c.Auth.Login(ctx, domain.LoginRequest{Email: store.SeedUserEmail, Password: "newpass1"}); err != nil {
		t.Fatalf("Login with new password: %v", err)
	}
}
