package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sachcu/marketplace-client/internal/core/ports"
	"github.com/sachcu/marketplace-client/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher fans moderation tasks out to a fixed set of workers using
// consistent hashing on the post ID, so updates to one post apply in
// submission order while different posts proceed in parallel.
type Dispatcher struct {
	workers   []chan ports.ModerationTask
	moderator ports.PostModerator
	log       zerolog.Logger

	wg      sync.WaitGroup
	mu      sync.Mutex
	results []ports.ModerationResult
	closed  bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, moderator ports.PostModerator, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.ModerationTask, numWorkers),
		moderator: moderator,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ModerationTask, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channel until
// Close is called; tasks dequeued after ctx is cancelled fail with ctx.Err().
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a task to the worker responsible for its post.
// It blocks once that worker's buffer is full.
func (d *Dispatcher) Enqueue(task ports.ModerationTask) {
	idx := d.shardIndex(task.PostID)
	d.workers[idx] <- task
	metrics.ModerationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// Close stops accepting tasks and waits for every worker to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// Results returns one result per processed task, in completion order.
// Call after Close.
func (d *Dispatcher) Results() []ports.ModerationResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]ports.ModerationResult, len(d.results))
	copy(out, d.results)
	return out
}

// shardIndex maps a post ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(postID int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.Itoa(postID)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ModerationTask) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for task := range ch {
		metrics.ModerationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

		res := ports.ModerationResult{PostID: task.PostID, Status: task.Status}
		if err := ctx.Err(); err != nil {
			res.Err = err
		} else {
			res.Post, res.Err = d.moderator.UpdatePostStatus(ctx, task.PostID, task.Status)
		}

		if res.Err != nil {
			metrics.ModerationTasksTotal.WithLabelValues("error").Inc()
			d.log.Error().Err(res.Err).
				Int("post_id", task.PostID).
				Str("status", string(task.Status)).
				Int("worker_id", id).
				Msg("moderation failed")
		} else {
			metrics.ModerationTasksTotal.WithLabelValues("ok").Inc()
		}

		d.mu.Lock()
		d.results = append(d.results, res)
		d.mu.Unlock()
	}
}
