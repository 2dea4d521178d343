package surprise

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Task is one unit of background work.
type Task func(ctx context.Context) error

type job struct {
	kind   string
	userID string
	run    Task
}

// TaskQueue runs tasks on a fixed pool of workers. Enqueue never blocks:
// when the buffer is full the task is dropped and logged.
type TaskQueue struct {
	jobs    chan job
	workers int
	logger  *slog.Logger

	mu      sync.RWMutex
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewTaskQueue creates a queue with the given buffer size and worker count
func NewTaskQueue(size, workers int, logger *slog.Logger) *TaskQueue {
	if size < 1 {
		size = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &TaskQueue{
		jobs:    make(chan job, size),
		workers: workers,
		logger:  logger,
	}
}

// Start launches the workers. Cancelling ctx or calling Stop ends them.
func (q *TaskQueue) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	q.mu.Lock()
	q.cancel = cancel
	q.mu.Unlock()

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.work(ctx, i)
	}
	q.logger.Info("task queue started", "workers", q.workers, "buffer", cap(q.jobs))
}

// Enqueue schedules a task and reports whether it was accepted
func (q *TaskQueue) Enqueue(kind, userID string, run Task) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.stopped {
		return false
	}

	select {
	case q.jobs <- job{kind: kind, userID: userID, run: run}:
		return true
	default:
		q.logger.Warn("task queue full, dropping task", "kind", kind, "user_id", userID)
		return false
	}
}

// Stop refuses new tasks, cancels in-flight ones and waits for the workers
func (q *TaskQueue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.jobs)
	cancel := q.cancel
	q.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	q.wg.Wait()
	q.logger.Info("task queue stopped")
}

func (q *TaskQueue) work(ctx context.Context, id int) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-q.jobs:
			if !ok {
				return
			}
			q.run(ctx, id, j)
		}
	}
}

// run executes one task, turning panics into logged errors
func (q *TaskQueue) run(ctx context.Context, worker int, j job) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("task panicked",
				"kind", j.kind,
				"user_id", j.userID,
				"worker", worker,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	if err := j.run(ctx); err != nil {
		q.logger.Warn("task failed", "kind", j.kind, "user_id", j.userID, "error", err)
	}
}
