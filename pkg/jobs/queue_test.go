package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueStopDrainsAcceptedJobs(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	q := NewQueue[int]("test", func(ctx context.Context, v int) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, v)
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 8})
	q.Start(context.Background())

	for i := 1; i <= 5; i++ {
		require.NoError(t, q.Enqueue(i))
	}
	q.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seen)
	assert.Error(t, q.Enqueue(6))
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	attempts := 0
	q := NewQueue[string]("retry", func(ctx context.Context, v string) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, QueueConfig{Workers: 1, MaxRetries: 2, RetryDelay: time.Millisecond})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue("entry"))
	q.Stop()

	assert.Equal(t, 3, attempts)
}

func TestQueueRejectsWhenFull(t *testing.T) {
	release := make(chan struct{})
	q := NewQueue[int]("full", func(ctx context.Context, v int) error {
		<-release
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(1))
	var err error
	for i := 0; i < 3 && err == nil; i++ {
		err = q.Enqueue(2)
	}
	assert.True(t, errors.Is(err, ErrQueueFull))

	close(release)
	q.Stop()
}

func TestQueueRequiresStart(t *testing.T) {
	q := NewQueue[int]("idle", func(context.Context, int) error { return nil }, QueueConfig{})
	assert.Error(t, q.Enqueue(1))
	q.Stop()
}
