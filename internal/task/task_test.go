package task

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuncTask(t *testing.T) {
	t.Run("successful execution", func(t *testing.T) {
		called := false
		task := NewFuncTask(TaskTypeCardGeneration, func(ctx context.Context) error {
			called = true
			return nil
		})

		assert.NotEqual(t, uuid.Nil, task.ID())
		assert.Equal(t, TaskTypeCardGeneration, task.Type())
		assert.Equal(t, TaskStatusPending, task.Status())

		require.NoError(t, task.Execute(context.Background()))
		assert.True(t, called)
		assert.Equal(t, TaskStatusCompleted, task.Status())
	})

	t.Run("failed execution", func(t *testing.T) {
		expectedErr := errors.New("stage failed")
		task := NewFuncTask(TaskTypeCardGeneration, func(ctx context.Context) error {
			return expectedErr
		})

		err := task.Execute(context.Background())
		assert.ErrorIs(t, err, expectedErr)
		assert.Equal(t, TaskStatusFailed, task.Status())
	})

	t.Run("status is processing while running", func(t *testing.T) {
		running := make(chan struct{})
		release := make(chan struct{})
		task := NewFuncTask("blocking", func(ctx context.Context) error {
			close(running)
			<-release
			return nil
		})

		done := make(chan error)
		go func() { done <- task.Execute(context.Background()) }()

		<-running
		assert.Equal(t, TaskStatusProcessing, task.Status())
		close(release)
		assert.NoError(t, <-done)
	})
}
