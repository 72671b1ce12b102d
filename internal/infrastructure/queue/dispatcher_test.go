package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/core/ports"
)

// recordingModerator records the order in which statuses reach each post.
type recordingModerator struct {
	mu     sync.Mutex
	seen   map[int][]domain.PostStatus
	failOn map[int]error
}

func newRecordingModerator() *recordingModerator {
	return &recordingModerator{seen: make(map[int][]domain.PostStatus), failOn: make(map[int]error)}
}

func (m *recordingModerator) UpdatePostStatus(_ context.Context, postID int, status domain.PostStatus) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[postID]; err != nil {
		return nil, err
	}
	m.seen[postID] = append(m.seen[postID], status)
	return &domain.Post{PostID: postID, Status: status}, nil
}

func TestDispatcher_PreservesPerPostOrder(t *testing.T) {
	mod := newRecordingModerator()
	d := NewDispatcher(4, mod, zerolog.Nop())
	d.Start(context.Background())

	sequence := []domain.PostStatus{domain.PostPending, domain.PostApproved, domain.PostDeclined, domain.PostApproved}
	for _, st := range sequence {
		for postID := 1; postID <= 20; postID++ {
			d.Enqueue(ports.ModerationTask{PostID: postID, Status: st})
		}
	}
	d.Close()

	if got := len(d.Results()); got != 80 {
		t.Fatalf("expected 80 results, got %d", got)
	}
	for postID := 1; postID <= 20; postID++ {
		got := mod.seen[postID]
		if len(got) != len(sequence) {
			t.Fatalf("post %d: expected %d updates, got %d", postID, len(sequence), len(got))
		}
		for i := range sequence {
			if got[i] != sequence[i] {
				t.Fatalf("post %d: update %d out of order: %v", postID, i, got)
			}
		}
	}
}

func TestDispatcher_ReportsFailures(t *testing.T) {
	mod := newRecordingModerator()
	boom := errors.New("boom")
	mod.failOn[2] = boom

	d := NewDispatcher(2, mod, zerolog.Nop())
	d.Start(context.Background())
	d.Enqueue(ports.ModerationTask{PostID: 1, Status: domain.PostApproved})
	d.Enqueue(ports.ModerationTask{PostID: 2, Status: domain.PostApproved})
	d.Close()

	var failed, ok int
	for _, r := range d.Results() {
		switch {
		case r.Err == nil && r.Post != nil:
			ok++
		case errors.Is(r.Err, boom) && r.PostID == 2:
			failed++
		default:
			t.Fatalf("unexpected result %+v", r)
		}
	}
	if ok != 1 || failed != 1 {
		t.Fatalf("expected one success and one failure, got %d/%d", ok, failed)
	}
}

func TestDispatcher_CancelledContextSkipsModerator(t *testing.T) {
	mod := newRecordingModerator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDispatcher(1, mod, zerolog.Nop())
	d.Start(ctx)
	d.Enqueue(ports.ModerationTask{PostID: 1, Status: domain.PostApproved})
	d.Close()

	res := d.Results()
	if len(res) != 1 || !errors.Is(res[0].Err, context.Canceled) {
		t.Fatalf("expected a cancelled result, got %+v", res)
	}
	if len(mod.seen) != 0 {
		t.Fatalf("moderator must not be called after cancellation")
	}
}

func TestDispatcher_CloseTwice(t *testing.T) {
	d := NewDispatcher(0, newRecordingModerator(), zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close()
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, newRecordingModerator(), zerolog.Nop())
	for id := 1; id < 100; id++ {
		if d.shardIndex(id) != d.shardIndex(id) {
			t.Fatalf("shard for %d changed", id)
		}
		if idx := d.shardIndex(id); idx < 0 || idx >= 8 {
			t.Fatalf("shard %d out of range", idx)
		}
	}
}
