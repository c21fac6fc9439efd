package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	queue "github.com/DMarby/bmpfilter/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupQueue(f func(ctx context.Context, data interface{}) (interface{}, error)) (*queue.Queue, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	workerQueue := queue.New(ctx, 5, f)
	go workerQueue.Run()
	return workerQueue, cancel
}

func TestProcess(t *testing.T) {
	workerQueue, cancel := setupQueue(func(ctx context.Context, data interface{}) (interface{}, error) {
		stringData, _ := data.(string)
		return stringData, nil
	})

	defer cancel()

	data, err := workerQueue.Process(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "test", data)
}

func TestShutdown(t *testing.T) {
	workerQueue, cancel := setupQueue(func(ctx context.Context, data interface{}) (interface{}, error) {
		return "", nil
	})

	cancel()

	_, err := workerQueue.Process(context.Background(), "test")
	assert.ErrorIs(t, err, queue.ErrShutdown)
}

func TestTaskWithError(t *testing.T) {
	taskErr := errors.New("custom error")
	errorQueue, cancel := setupQueue(func(ctx context.Context, data interface{}) (interface{}, error) {
		return nil, taskErr
	})

	defer cancel()
	_, err := errorQueue.Process(context.Background(), "test")
	assert.ErrorIs(t, err, taskErr)
}

func TestTaskWithCancelledContext(t *testing.T) {
	errorQueue, cancel := setupQueue(func(ctx context.Context, data interface{}) (interface{}, error) {
		return nil, errors.New("custom error")
	})

	defer cancel()

	ctx, ctxCancel := context.WithCancel(context.Background())
	ctxCancel()

	_, err := errorQueue.Process(ctx, "test")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkerLimit(t *testing.T) {
	var running, peak int32
	release := make(chan struct{})

	workerQueue, cancel := setupQueue(func(ctx context.Context, data interface{}) (interface{}, error) {
		current := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if current <= old || atomic.CompareAndSwapInt32(&peak, old, current) {
				break
			}
		}

		<-release
		atomic.AddInt32(&running, -1)
		return data, nil
	})

	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := workerQueue.Process(context.Background(), i)
			assert.NoError(t, err)
		}(i)
	}

	// Wait for every worker to pick up a job
	for atomic.LoadInt32(&running) < 5 {
		time.Sleep(time.Millisecond)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(5), atomic.LoadInt32(&peak), "concurrent jobs")
}
