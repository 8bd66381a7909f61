// Package parallel provides the worker pool that runs candidate host-set
// searches concurrently. It is an internal utility: the solver owns the
// pool's lifecycle and coordinates cancellation through contexts.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolShutdown is returned when submitting to a pool that has been
// shut down.
var ErrPoolShutdown = errors.New("worker pool has been shut down")

// WorkerPool runs submitted tasks on a fixed set of goroutines. Submission
// applies backpressure: when every worker is busy and the queue is full,
// Submit blocks, which keeps candidate enumeration from racing ahead of
// the searches it feeds.
type WorkerPool struct {
	taskChan     chan func()
	shutdownChan chan struct{}
	workerWg     sync.WaitGroup
	once         sync.Once
}

// NewWorkerPool starts a pool with the given number of workers. A size of
// zero or below defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	pool := &WorkerPool{
		taskChan:     make(chan func(), maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}
	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}
	return pool
}

func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()
	for {
		select {
		case <-wp.shutdownChan:
			return
		case task := <-wp.taskChan:
			if task != nil {
				task()
			}
		}
	}
}

// Submit hands a task to the pool, blocking while the queue is full.
// It fails when ctx ends or the pool shuts down first; a nil error means
// the task was queued and will run unless the pool shuts down before a
// worker picks it up.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	select {
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case wp.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown stops the workers and waits for running tasks to finish.
// Queued tasks that no worker picked up are dropped. The task channel is
// never closed, so a Submit racing a Shutdown fails cleanly instead of
// panicking.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdownChan)
		wp.workerWg.Wait()
	})
}
