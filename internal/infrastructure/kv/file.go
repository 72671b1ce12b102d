package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const (
	fileMode  = 0o600
	dirMode   = 0o700
	lockRetry = 10 * time.Millisecond
)

// FileStore persists values as a single JSON object on disk. Every write
// rewrites the whole file through a temp file and rename, so readers never
// observe a half-written record. Writes hold an exclusive lock on
// <path>.lock across the read-modify-write, so stores in other processes
// sharing the file do not drop each other's keys.
type FileStore struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
}

// NewFileStore returns a FileStore at path. The file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, lock: flock.New(path + ".lock")}
}

// DefaultFilePath returns ~/.config/sachcu/session.json (or the OS equivalent).
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "sachcu", "session.json"), nil
}

// Path returns the backing file location.
func (f *FileStore) Path() string {
	return f.path
}

// Get reads without the file lock; a concurrent writer's rename is atomic.
func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileStore) SetMany(ctx context.Context, values map[string]string) error {
	return f.update(ctx, func(current map[string]string) bool {
		for k, v := range values {
			current[k] = v
		}
		return true
	})
}

func (f *FileStore) Delete(ctx context.Context, keys ...string) error {
	return f.update(ctx, func(current map[string]string) bool {
		changed := false
		for _, k := range keys {
			if _, ok := current[k]; ok {
				delete(current, k)
				changed = true
			}
		}
		return changed
	})
}

// update applies fn to the stored values under the file lock and saves the
// result when fn reports a change.
func (f *FileStore) update(ctx context.Context, fn func(map[string]string) bool) error {
	return f.locked(ctx, func() error {
		current, err := f.load()
		if err != nil {
			return err
		}
		if !fn(current) {
			return nil
		}
		return f.save(current)
	})
}

// locked runs fn while holding both the in-process mutex and the exclusive
// cross-process lock. Waiting for the lock ends with ctx.
func (f *FileStore) locked(ctx context.Context, fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), dirMode); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	ok, err := f.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("lock session file: %w", err)
	}
	if !ok {
		return fmt.Errorf("lock session file %s: not acquired", f.lock.Path())
	}
	defer func() { _ = f.lock.Unlock() }()

	return fn()
}

func (f *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode session file %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileStore) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
