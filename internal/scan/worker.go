package scan

import (
	"sync"

	"ed-rscan/internal/engine"
)

// job is one queued search with its completion callback.
type job struct {
	params   Params
	progress func(string)
	done     func(engine.Route, error)
}

// Worker runs search jobs strictly one at a time on a dedicated goroutine.
// Submitting while a job is in flight queues the new one instead of running
// it concurrently; the optimizer itself is synchronous and CPU-bound.
type Worker struct {
	searcher *Searcher
	jobs     chan job
	wg       sync.WaitGroup

	closeOnce sync.Once
}

// NewWorker starts the worker goroutine.
func NewWorker(searcher *Searcher) *Worker {
	w := &Worker{
		searcher: searcher,
		jobs:     make(chan job, 16),
	}
	w.wg.Add(1)
	go w.loop()
	return w
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for j := range w.jobs {
		route, err := w.searcher.Run(j.params, j.progress)
		if j.done != nil {
			j.done(route, err)
		}
	}
}

// Submit queues a search job. progress and done may be nil; done is invoked
// from the worker goroutine once the job finishes.
func (w *Worker) Submit(params Params, progress func(string), done func(engine.Route, error)) {
	w.jobs <- job{params: params, progress: progress, done: done}
}

// Close stops accepting jobs and waits for the queue to drain.
func (w *Worker) Close() {
	w.closeOnce.Do(func() {
		close(w.jobs)
	})
	w.wg.Wait()
}
