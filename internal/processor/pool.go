package processor

import (
	"context"
	"runtime"
	"sync"

	"webpify/internal/codec"
	"webpify/internal/planner"
)

// ConvertFunc performs one task.
type ConvertFunc func(ctx context.Context, task planner.Task) codec.Outcome

// Pool runs tasks on a fixed number of goroutines.
type Pool struct {
	workers int
}

// NewPool returns a pool with the given number of workers, or one per CPU
// when workers is not positive.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers}
}

func (p *Pool) Workers() int {
	return p.workers
}

// Run feeds tasks to the workers and returns a channel of outcomes in
// completion order. Every started task yields exactly one outcome; the
// channel is closed once all workers have returned. After ctx is done no
// further task is started, but running ones finish and are delivered.
func (p *Pool) Run(ctx context.Context, tasks []planner.Task, convert ConvertFunc) <-chan codec.Outcome {
	jobs := make(chan planner.Task)
	results := make(chan codec.Outcome, p.workers)

	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for task := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results <- convert(ctx, task)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, task := range tasks {
			if ctx.Err() != nil {
				return
			}
			select {
			case jobs <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
