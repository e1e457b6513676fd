// SPDX-License-Identifier: Apache-2.0

// Package parallel fans file processing out across a fixed worker pool.
// Workers own file reading, routing and pattern matching; the merged email
// set is built by a single collector so no locking leaks into the pipeline.
package parallel

import (
	"context"
	"os"
	"sync"
	"time"

	"email-harvest/internal/harvest"
	"email-harvest/internal/observability"
	"email-harvest/internal/router"
)

// WorkerPool manages parallel file processing.
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	router   *router.Router
	observer *observability.Observer
}

// Job is one file to process.
type Job struct {
	FilePath string
}

// Result is the disposition of one processed file. Emails holds the raw
// matches in match order; deduplication happens when results are merged.
type Result struct {
	FilePath string
	Emails   []string
	Route    *router.Result
	Error    error
	Duration time.Duration
}

// NewWorkerPool creates a pool of the given size routing files through rt.
func NewWorkerPool(workers int, rt *router.Router, observer *observability.Observer) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
		router:   rt,
		observer: observer,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Submit queues one job. Blocks when the queue is full; returns early if the
// pool is cancelled.
func (wp *WorkerPool) Submit(job *Job) {
	select {
	case wp.jobs <- job:
	case <-wp.ctx.Done():
	}
}

// Finish closes the intake so workers drain and exit, then closes the
// results channel. Call after the last Submit.
func (wp *WorkerPool) Finish() {
	close(wp.jobs)
	wp.wg.Wait()
	close(wp.results)
}

// Stop cancels in-flight work.
func (wp *WorkerPool) Stop() {
	wp.cancel()
}

// Results returns the results channel. It is closed by Finish.
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job, id)
		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) processJob(job *Job, workerID int) *Result {
	start := time.Now()
	complete := wp.observer.StartTiming("worker_pool", "process_job", job.FilePath)

	result := &Result{FilePath: job.FilePath}

	data, err := os.ReadFile(job.FilePath)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		complete(false, map[string]any{"worker_id": workerID})
		return result
	}

	routed := wp.router.Route(job.FilePath, data)
	result.Route = routed
	if routed.Err != nil {
		result.Error = routed.Err
	}
	if routed.Blob != nil {
		result.Emails = harvest.Harvest(routed.Blob.Text())
	}

	result.Duration = time.Since(start)
	complete(result.Error == nil, map[string]any{
		"worker_id":   workerID,
		"match_count": len(result.Emails),
	})
	return result
}
