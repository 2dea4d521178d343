package surprise

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskQueue_RunsTasks(t *testing.T) {
	q := NewTaskQueue(10, 2, testLogger())
	q.Start(context.Background())
	defer q.Stop()

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		require.True(t, q.Enqueue("test", "u1", func(ctx context.Context) error {
			wg.Done()
			return nil
		}))
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not run")
	}
}

func TestTaskQueue_SurvivesPanicsAndErrors(t *testing.T) {
	q := NewTaskQueue(10, 1, testLogger())
	q.Start(context.Background())
	defer q.Stop()

	ran := make(chan struct{})
	q.Enqueue("panic", "u1", func(ctx context.Context) error { panic("boom") })
	q.Enqueue("error", "u1", func(ctx context.Context) error { return errors.New("failed") })
	q.Enqueue("ok", "u1", func(ctx context.Context) error {
		close(ran)
		return nil
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after a panic")
	}
}

func TestTaskQueue_DropsWhenFull(t *testing.T) {
	q := NewTaskQueue(2, 1, testLogger())
	noop := func(ctx context.Context) error { return nil }

	assert.True(t, q.Enqueue("a", "u1", noop))
	assert.True(t, q.Enqueue("b", "u1", noop))
	assert.False(t, q.Enqueue("c", "u1", noop))
}

func TestTaskQueue_StopRefusesNewTasks(t *testing.T) {
	q := NewTaskQueue(2, 1, testLogger())
	q.Start(context.Background())
	q.Stop()
	q.Stop()

	assert.False(t, q.Enqueue("late", "u1", func(ctx context.Context) error { return nil }))
}

func TestTaskQueue_StopCancelsInFlight(t *testing.T) {
	q := NewTaskQueue(2, 1, testLogger())
	q.Start(context.Background())

	started := make(chan struct{})
	cancelled := make(chan struct{})
	q.Enqueue("slow", "u1", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})

	<-started
	q.Stop()

	select {
	case <-cancelled:
	default:
		t.Fatal("in-flight task was not cancelled")
	}
}
