package queue

import (
	"context"
	"errors"
)

// ErrShutdown is returned when processing on a queue whose context has been canceled
var ErrShutdown = errors.New("queue has been shutdown")

// HandlerFunc processes a single job
type HandlerFunc func(ctx context.Context, data interface{}) (interface{}, error)

// Queue is a worker queue with a fixed amount of workers
type Queue struct {
	workers int
	handler HandlerFunc
	queue   chan job
	ctx     context.Context
}

type job struct {
	ctx    context.Context
	data   interface{}
	result chan jobResult
}

type jobResult struct {
	result interface{}
	err    error
}

// New creates a new Queue with the specified amount of workers, it runs until the context is canceled
func New(ctx context.Context, workers int, handler HandlerFunc) *Queue {
	return &Queue{
		workers: workers,
		handler: handler,
		queue:   make(chan job),
		ctx:     ctx,
	}
}

// Run starts the workers and blocks until the queue context is canceled
func (q *Queue) Run() {
	for i := 0; i < q.workers; i++ {
		go q.worker()
	}

	<-q.ctx.Done()
}

func (q *Queue) worker() {
	for {
		select {
		case <-q.ctx.Done():
			return
		case j := <-q.queue:
			// The caller may have given up while the job was waiting
			if err := j.ctx.Err(); err != nil {
				j.result <- jobResult{err: err}
				continue
			}

			result, err := q.handler(j.ctx, j.data)
			j.result <- jobResult{
				result: result,
				err:    err,
			}
		}
	}
}

// Process adds a job to the queue, waits for it to process, and returns the result
func (q *Queue) Process(ctx context.Context, data interface{}) (interface{}, error) {
	if q.ctx.Err() != nil {
		return nil, ErrShutdown
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Buffered so that a worker never blocks on a caller that has gone away
	resultChan := make(chan jobResult, 1)

	select {
	case q.queue <- job{ctx: ctx, data: data, result: resultChan}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-q.ctx.Done():
		return nil, ErrShutdown
	}

	select {
	case result := <-resultChan:
		if result.err != nil {
			return nil, result.err
		}

		return result.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
