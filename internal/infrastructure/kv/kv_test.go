package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sachcu/marketplace-client/internal/core/ports"
)

func exerciseStore(t *testing.T, s ports.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got %v %v", ok, err)
	}

	if err := s.SetMany(ctx, map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("SetMany error: %v", err)
	}
	if v, ok, err := s.Get(ctx, "a"); err != nil || !ok || v != "1" {
		t.Fatalf("expected a=1, got %q %v %v", v, ok, err)
	}

	if err := s.SetMany(ctx, map[string]string{"a": "3"}); err != nil {
		t.Fatalf("SetMany error: %v", err)
	}
	if v, _, _ := s.Get(ctx, "a"); v != "3" {
		t.Fatalf("expected overwrite, got %q", v)
	}

	if err := s.Delete(ctx, "a", "never-set"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Fatalf("expected a to be deleted")
	}
	if v, ok, _ := s.Get(ctx, "b"); !ok || v != "2" {
		t.Fatalf("expected b to survive, got %q %v", v, ok)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	exerciseStore(t, m)
	if snap := m.Snapshot(); len(snap) != 1 || snap["b"] != "2" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	exerciseStore(t, NewFileStore(path))

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != fileMode {
		t.Fatalf("expected mode %o, got %o", fileMode, info.Mode().Perm())
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	if err := NewFileStore(path).SetMany(ctx, map[string]string{"userToken": "abc"}); err != nil {
		t.Fatalf("SetMany error: %v", err)
	}
	v, ok, err := NewFileStore(path).Get(ctx, "userToken")
	if err != nil || !ok || v != "abc" {
		t.Fatalf("expected persisted value, got %q %v %v", v, ok, err)
	}
}

func TestFileStore_DeleteMissingFileIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := NewFileStore(path).Delete(context.Background(), "userToken"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file to be created, got %v", err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := NewFileStore(path).Get(context.Background(), "userToken"); err == nil {
		t.Fatalf("expected an error for a corrupt file")
	}
}

func TestFileStore_InterleavedWritersKeepBothRoles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()
	userSide, adminSide := NewFileStore(path), NewFileStore(path)

	adminDone := make(chan error, 1)
	err := userSide.locked(ctx, func() error {
		current, err := userSide.load()
		if err != nil {
			return err
		}

		// The admin login starts after the user side has read the file.
		go func() {
			adminDone <- adminSide.SetMany(ctx, map[string]string{"adminToken": "adm", "admin": `{"adminID":1}`})
		}()
		select {
		case err := <-adminDone:
			t.Fatalf("admin write finished while the file was locked: %v", err)
		case <-time.After(100 * time.Millisecond):
		}

		current["userToken"] = "usr"
		current["user"] = `{"userID":2}`
		return userSide.save(current)
	})
	if err != nil {
		t.Fatalf("user write: %v", err)
	}
	if err := <-adminDone; err != nil {
		t.Fatalf("admin write: %v", err)
	}

	reader := NewFileStore(path)
	for _, key := range []string{"userToken", "user", "adminToken", "admin"} {
		if _, ok, err := reader.Get(ctx, key); err != nil || !ok {
			t.Fatalf("%s missing after interleaved logins (err=%v)", key, err)
		}
	}

	if err := userSide.Delete(ctx, "userToken", "user"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if v, ok, _ := reader.Get(ctx, "adminToken"); !ok || v != "adm" {
		t.Fatalf("user logout touched the admin slot: %q %v", v, ok)
	}
}

func TestFileStore_ConcurrentStoresOnOnePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()
	stores := []*FileStore{NewFileStore(path), NewFileStore(path)}

	const perStore = 15
	var wg sync.WaitGroup
	errs := make(chan error, len(stores)*perStore)
	for n, s := range stores {
		for i := 0; i < perStore; i++ {
			n, s, i := n, s, i
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- s.SetMany(ctx, map[string]string{fmt.Sprintf("s%d-k%d", n, i): "v"})
			}()
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("SetMany: %v", err)
		}
	}

	values, err := NewFileStore(path).load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(values) != len(stores)*perStore {
		t.Fatalf("expected %d keys, got %d: %v", len(stores)*perStore, len(values), values)
	}
}

func TestFileStore_LockWaitHonoursContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	holder, waiter := NewFileStore(path), NewFileStore(path)

	err := holder.locked(context.Background(), func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		return waiter.SetMany(ctx, map[string]string{"userToken": "usr"})
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected the blocked write to end with the context, got %v", err)
	}
	if _, ok, _ := waiter.Get(context.Background(), "userToken"); ok {
		t.Fatalf("write went through without the lock")
	}
}
