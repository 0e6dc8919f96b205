package worker_pool

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

type TaskFunc func(ctx context.Context) (any, error)

// TaskResult holds the outcome of a finished task (its ID, result value, or error).
type TaskResult struct {
	ID     string
	Result any
	Err    error
}

// workItem is an internal wrapper for tasks submitted to the pool.
type workItem struct {
	id string
	fn TaskFunc
}

// WorkerPool fans submitted tasks out over a fixed number of workers. The
// audit fetcher uses it to issue the page and auxiliary-resource requests
// concurrently; task errors are delivered on ResultsCh and never cancel the
// other in-flight tasks, so each resource resolves independently.
type WorkerPool struct {
	tasksCh   chan workItem
	ResultsCh chan TaskResult
	ctx       context.Context
	wg        sync.WaitGroup
	log       *log.Logger
}

// NewWorkerPool starts numWorkers workers bound to parentCtx. Workers drain
// tasks until Stop is called or the context is canceled.
func NewWorkerPool(parentCtx context.Context, numWorkers int, logger *log.Logger) *WorkerPool {
	wp := &WorkerPool{
		tasksCh:   make(chan workItem),
		ResultsCh: make(chan TaskResult, numWorkers),
		ctx:       parentCtx,
		log:       logger,
	}
	wp.wg.Add(numWorkers)
	for i := 1; i <= numWorkers; i++ {
		go wp.worker(i)
	}
	return wp
}

// Submit hands a task to the pool. It fails only when the pool's context is
// already canceled.
func (wp *WorkerPool) Submit(id string, taskFn TaskFunc) error {
	select {
	case wp.tasksCh <- workItem{id: id, fn: taskFn}:
		return nil
	case <-wp.ctx.Done():
		wp.log.Warnf("Submit rejected for task %s: pool is shutting down", id)
		return errors.New("worker pool is canceled; task not accepted")
	}
}

func (wp *WorkerPool) worker(workerID int) {
	defer wp.wg.Done()
	for {
		select {
		case <-wp.ctx.Done():
			wp.log.Debugf("Worker %d exiting due to cancellation", workerID)
			return
		case task, ok := <-wp.tasksCh:
			if !ok {
				return
			}
			wp.log.Debugf("Worker %d starting task %s", workerID, task.id)
			result, err := task.fn(wp.ctx)
			if err != nil {
				wp.log.WithError(err).Debugf("Task %s failed", task.id)
			}
			wp.ResultsCh <- TaskResult{ID: task.id, Result: result, Err: err}
		}
	}
}

// Stop closes the task channel and waits for in-flight tasks, then closes
// ResultsCh. Callers must have drained or be draining ResultsCh.
func (wp *WorkerPool) Stop() {
	close(wp.tasksCh)
	go func() {
		wp.wg.Wait()
		close(wp.ResultsCh)
	}()
}
