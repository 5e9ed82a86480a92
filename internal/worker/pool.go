// Package worker runs scrape jobs concurrently with a bounded pool.
package worker

import (
	"context"
	"sync"
)

// Job is one unit of work, typically a single source scrape.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a finished job hands back.
type Result interface {
	Err() error
}

// Pool fans jobs out to a fixed set of workers. Results are collected
// as jobs finish, so Submit never backs up behind a full result
// buffer no matter how many jobs are queued.
type Pool struct {
	workers   int
	jobs      chan Job
	results   chan Result
	collected []Result
	collectWg sync.WaitGroup
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given number of workers. Anything
// below one is clamped to one.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers and the result collector.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}

	p.collectWg.Add(1)
	go p.collect()
}

func (p *Pool) collect() {
	defer p.collectWg.Done()

	for res := range p.results {
		p.collected = append(p.collected, res)
	}
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			res := job.Execute(p.ctx)
			select {
			case p.results <- res:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. After Shutdown it is a no-op.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobs <- job:
	}
}

// Wait closes the queue, lets the workers drain it, and returns every
// result.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.wg.Wait()
	p.closeResults()
	p.collectWg.Wait()

	return p.collected
}

// Shutdown cancels in-flight jobs and stops the workers.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
	p.collectWg.Wait()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
