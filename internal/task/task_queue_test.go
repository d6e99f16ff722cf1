package task

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func noopTask() *FuncTask {
	return NewFuncTask(TaskTypeCardGeneration, func(ctx context.Context) error { return nil })
}

func TestTaskQueue_Capacity(t *testing.T) {
	logger := setupTestLogger()

	tests := []struct {
		name string
		size int
		want int
	}{
		{"positive size", 4, 4},
		{"zero falls back to one slot", 0, 1},
		{"negative falls back to one slot", -3, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			queue := NewTaskQueue(tc.size, logger)
			assert.Equal(t, tc.want, cap(queue.GetChannel()))
		})
	}
}

func TestTaskQueue_RejectsWhenFull(t *testing.T) {
	queue := NewTaskQueue(1, setupTestLogger())

	first := noopTask()
	require.NoError(t, queue.Enqueue(first))

	err := queue.Enqueue(noopTask())
	require.ErrorIs(t, err, ErrQueueFull)
	assert.Contains(t, err.Error(), "capacity 1")

	got := <-queue.GetChannel()
	assert.Equal(t, first.ID(), got.ID())
	assert.NoError(t, queue.Enqueue(noopTask()), "space frees up once a task is taken")
}

func TestTaskQueue_EnqueueAfterClose(t *testing.T) {
	queue := NewTaskQueue(2, setupTestLogger())
	pending := noopTask()
	require.NoError(t, queue.Enqueue(pending))

	queue.Close()
	queue.Close()

	assert.ErrorIs(t, queue.Enqueue(noopTask()), ErrQueueClosed)

	// Tasks queued before Close are still delivered, then the channel ends.
	got, ok := <-queue.GetChannel()
	require.True(t, ok)
	assert.Equal(t, pending.ID(), got.ID())
	_, ok = <-queue.GetChannel()
	assert.False(t, ok)
}

// TestTaskQueue_CloseRacesEnqueue checks that concurrent Enqueue and Close
// never send on a closed channel.
func TestTaskQueue_CloseRacesEnqueue(t *testing.T) {
	queue := NewTaskQueue(64, setupTestLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 16; j++ {
				err := queue.Enqueue(noopTask())
				if err != nil {
					assert.ErrorIs(t, err, ErrQueueClosed)
				}
			}
		}()
	}
	queue.Close()
	wg.Wait()

	assert.ErrorIs(t, queue.Enqueue(noopTask()), ErrQueueClosed)
}
