package settlement

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	tests := []struct {
		name           string
		numTasks       int
		numWorkers     int
		expectedErrors int
	}{
		{
			name:       "runs every task",
			numTasks:   5,
			numWorkers: 2,
		},
		{
			name:           "failed task does not stop the pool",
			numTasks:       3,
			numWorkers:     2,
			expectedErrors: 1,
		},
		{
			name:       "non-positive size falls back to one worker",
			numTasks:   2,
			numWorkers: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool(tt.numWorkers)
			defer wp.Close()

			var (
				mu       sync.Mutex
				executed int
				failed   int
				wg       sync.WaitGroup
			)

			for i := range tt.numTasks {
				wg.Add(1)
				err := wp.AddTask(context.Background(), func() error {
					defer wg.Done()
					mu.Lock()
					defer mu.Unlock()
					if i == tt.numTasks-1 && tt.expectedErrors > 0 {
						failed++
						return assert.AnError
					}
					executed++
					return nil
				})
				require.NoError(t, err, "failed to add task to pool")
			}

			wg.Wait()

			assert.Equal(t, tt.numTasks-tt.expectedErrors, executed)
			assert.Equal(t, tt.expectedErrors, failed)
		})
	}
}

func TestWorkerPool_AddTaskCanceled(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, wp.AddTask(context.Background(), func() error {
		close(started)
		<-release
		return nil
	}))
	<-started
	require.NoError(t, wp.AddTask(context.Background(), func() error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := wp.AddTask(ctx, func() error {
		t.Error("task must not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	time.Sleep(10 * time.Millisecond)
}
