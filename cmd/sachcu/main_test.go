package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/devapi"
	"github.com/sachcu/marketplace-client/internal/devapi/store"
)

func TestExitCodeForError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		out  string
	}{
		{"canceled", fmt.Errorf("dispatch: %w", context.Canceled), exitCanceled, "canceled\n"},
		{"canceled api error", domain.NewNetworkError(context.Canceled), exitCanceled, "canceled\n"},
		{"exit error", &exitError{code: exitRequestFailed, err: errors.New("post not found")}, exitRequestFailed, "post not found\n"},
		{"silent", &exitError{code: 7, silent: true}, 7, ""},
		{"wrapped exit error", fmt.Errorf("ctx: %w", &exitError{code: exitNetwork, err: errors.New("dial")}), exitNetwork, "dial\n"},
		{"plain", errors.New("boom"), exitGeneric, "boom\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := exitCodeForError(tc.err, &buf); got != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, got)
			}
			if buf.String() != tc.out {
				t.Fatalf("expected stderr %q, got %q", tc.out, buf.String())
			}
		})
	}
}

func TestRunMain(t *testing.T) {
	var buf bytes.Buffer
	if got := runMain(func() error { return nil }, &buf); got != 0 || buf.Len() != 0 {
		t.Fatalf("expected clean exit, got %d %q", got, buf.String())
	}
}

func TestClassify(t *testing.T) {
	if classify(nil, domain.RoleUser) != nil {
		t.Fatalf("nil stays nil")
	}
	plain := errors.New("plain")
	if classify(plain, domain.RoleUser) != plain {
		t.Fatalf("non-API errors pass through")
	}

	err := classify(domain.NewUnauthorized(), domain.RoleAdmin)
	var ee *exitError
	if !errors.As(err, &ee) || ee.code != exitUnauthorized {
		t.Fatalf("expected unauthorized exit, got %v", err)
	}
	if err.Error() != "401 Unauthorized (run `sachcu admin-login`)" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("exit error must unwrap to the API error")
	}

	userErr := classify(domain.NewUnauthorized(), domain.RoleUser)
	if !strings.HasSuffix(userErr.Error(), "(run `sachcu login`)") {
		t.Fatalf("unexpected hint %q", userErr.Error())
	}

	for kind, code := range map[error]int{
		domain.NewRequestFailed(404, "post not found", map[string]any{}): exitRequestFailed,
		domain.NewNetworkError(errors.New("refused")):                    exitNetwork,
	} {
		if !errors.As(classify(kind, domain.RoleUser), &ee) || ee.code != code {
			t.Fatalf("%v: expected code %d", kind, code)
		}
	}

	parseErr := domain.NewParseError(200, errors.New("bad json"))
	if classify(parseErr, domain.RoleUser) != error(parseErr) {
		t.Fatalf("parse errors keep the generic exit code")
	}
}

func TestReadPasswordStdin(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"secret\n", "secret", true},
		{"secret\r\nignored\n", "secret", true},
		{"no-newline", "no-newline", true},
		{"\n", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := readPasswordStdin(strings.NewReader(tc.in))
		if (err == nil) != tc.ok || got != tc.want {
			t.Fatalf("%q: got %q, %v", tc.in, got, err)
		}
	}
}

func TestMoney(t *testing.T) {
	if got := money(85000); got != "85000" {
		t.Fatalf("unexpected %q", got)
	}
}

// runCLI executes the root command once. Flags are package globals, so each
// call resets the ones a previous run may have set.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	authPassword, authPasswordStdin = "", false
	flagOutput = "text"
	whoamiAdmin, logoutAdmin, logoutAll = false, false, false

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_LoginFlow(t *testing.T) {
	st := store.New(store.Options{HashCost: bcrypt.MinCost})
	if err := st.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	srv := httptest.NewServer(devapi.NewRouter(st, devapi.Options{JWTSecret: "s", TokenTTL: time.Hour, Logger: zerolog.Nop()}))
	defer srv.Close()

	t.Setenv("SACHCU_API_URL", srv.URL+devapi.DefaultBasePath)
	t.Setenv("SACHCU_SESSION_BACKEND", "file")
	t.Setenv("SACHCU_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("SACHCU_LOG_LEVEL", "error")

	_, err := runCLI(t, "", "posts", "mine")
	var ee *exitError
	if !errors.As(err, &ee) || ee.code != exitUnauthorized {
		t.Fatalf("expected unauthorized exit before login, got %v", err)
	}

	out, err := runCLI(t, store.SeedUserPassword+"\n", "login", "--email", store.SeedUserEmail, "--password-stdin")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "logged in as Reader") {
		t.Fatalf("unexpected login output %q", out)
	}

	out, err = runCLI(t, "", "whoami", "-o", "json")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	var p domain.Principal
	if err := json.Unmarshal([]byte(out), &p); err != nil || p.Email != store.SeedUserEmail {
		t.Fatalf("unexpected whoami %q: %v", out, err)
	}

	out, err = runCLI(t, "", "posts", "mine", "-o", "json")
	if err != nil {
		t.Fatalf("posts mine: %v", err)
	}
	var posts []domain.Post
	if err := json.Unmarshal([]byte(out), &posts); err != nil || len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %q: %v", out, err)
	}

	if _, err := runCLI(t, "", "whoami", "admin"); !errors.As(err, &ee) || ee.code != exitUnauthorized {
		t.Fatalf("admin slot should be empty, got %v", err)
	}

	if _, err := runCLI(t, "", "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := runCLI(t, "", "whoami"); !errors.As(err, &ee) || ee.code != exitUnauthorized {
		t.Fatalf("expected logged out, got %v", err)
	}

	if _, err := runCLI(t, "", "books", "list", "-o", "yaml"); err == nil {
		t.Fatalf("expected bad output format to fail")
	}
}
