package threadpool

import (
	"time"
)

type worker struct {
	id   int
	pool *Pool
}

func newWorker(id int, p *Pool) *worker {
	return &worker{id: id, pool: p}
}

// run executes queued tasks until the queue reports shutdown.
// If a task ends the goroutine through runtime.Goexit, a replacement goroutine takes over
// the same worker slot so the pool keeps its size.
func (w *worker) run() {
	returned := false
	defer func() {
		if returned {
			w.pool.workersWG.Done()
			return
		}
		w.pool.log.WithField("worker", w.id).Warn("worker goroutine exited inside a task, replacing it")
		go w.run()
	}()

	for {
		t, ok := w.pool.queue.pop()
		if !ok {
			returned = true
			return
		}
		w.pool.instruments.queued.Add(-1)
		w.execute(t)
	}
}

// execute runs t in a guarded scope that always settles t's result channel:
// a returned error or a recovered panic settles it as failed, anything else as fulfilled.
// The active count is released afterwards regardless of the outcome.
func (w *worker) execute(t runnable) {
	var (
		err      error
		returned bool
		start    = time.Now()
	)

	defer func() {
		if !returned && err == nil {
			err = ErrTaskExited
		}
		if rerr := t.resolve(err); rerr != nil {
			w.pool.log.WithField("worker", w.id).WithError(rerr).Error("task result settled twice")
		}
		w.pool.recordExecution(time.Since(start), err)
		w.pool.queue.finish()
	}()

	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
			w.pool.log.WithField("worker", w.id).Debugf("recovered task panic: %v", r)
		}
	}()

	w.pool.instruments.active.Add(1)
	defer w.pool.instruments.active.Add(-1)

	err = t.call()
	returned = true
}
