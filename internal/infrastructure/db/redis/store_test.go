package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// newTestStore connects to SACHCU_TEST_REDIS_ADDR and skips when it is unset.
func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	addr := os.Getenv("SACHCU_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SACHCU_TEST_REDIS_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, "test-"+uuid.NewString(), ttl)
}

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "", 0)
	if got := s.key("userToken"); got != "sachcu:session:default:userToken" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "userToken"); err != nil || ok {
		t.Fatalf("expected missing key, got %v %v", ok, err)
	}
	if err := s.SetMany(ctx, map[string]string{"userToken": "abc", "user": `{"userID":1}`}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	if v, ok, err := s.Get(ctx, "userToken"); err != nil || !ok || v != "abc" {
		t.Fatalf("expected abc, got %q %v %v", v, ok, err)
	}
	if err := s.Delete(ctx, "userToken", "user", "authToken"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "user"); ok {
		t.Fatalf("expected user key to be deleted")
	}
}

func TestStore_TTL(t *testing.T) {
	s := newTestStore(t, time.Minute)
	ctx := context.Background()

	if err := s.SetMany(ctx, map[string]string{"adminToken": "x"}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	ttl, err := s.client.TTL(ctx, s.key("adminToken")).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected ttl within a minute, got %s", ttl)
	}
	_ = s.Delete(ctx, "adminToken")
}

func TestConfig_Options(t *testing.T) {
	cases := []struct {
		name   string
		cfg    Config
		addr   string
		pass   string
		db     int
		dialTO time.Duration
	}{
		{"host port", Config{Addr: "localhost:6379"}, "localhost:6379", "", 0, defaultTimeout},
		{"url", Config{Addr: "redis://:pw@cache:6380/2"}, "cache:6380", "pw", 2, defaultTimeout},
		{"overrides", Config{Addr: "redis://:pw@cache:6380/2", Password: "other", DB: 5, Timeout: time.Second}, "cache:6380", "other", 5, time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := tc.cfg.options()
			if err != nil {
				t.Fatalf("options: %v", err)
			}
			if opts.Addr != tc.addr || opts.Password != tc.pass || opts.DB != tc.db || opts.DialTimeout != tc.dialTO {
				t.Fatalf("unexpected options addr=%s pass=%s db=%d timeout=%s", opts.Addr, opts.Password, opts.DB, opts.DialTimeout)
			}
		})
	}

	if _, err := (Config{Addr: "redis://cache:6380/notanumber"}).options(); err == nil {
		t.Fatalf("expected error for bad db in url")
	}
}
