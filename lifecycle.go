package threadpool

import (
	"sync"
)

// lifecycleCoordinator encapsulates the final stage of a pool shutdown.
// It is a wiring helper: it doesn't decide when workers stop (the queue does);
// it waits for them and runs the post-stop hooks in a deterministic order.
//
// Close() is safe for concurrent calls; the sequence executes exactly once and
// every caller returns only after it completed.
type lifecycleCoordinator struct {
	waitWorkers func()
	stopped     []func()

	once sync.Once
}

func newLifecycleCoordinator(waitWorkers func(), stopped ...func()) *lifecycleCoordinator {
	return &lifecycleCoordinator{
		waitWorkers: waitWorkers,
		stopped:     stopped,
	}
}

// Close executes the teardown sequence exactly once:
// 1) wait for every worker goroutine to exit
// 2) run the stopped hooks in registration order
func (lc *lifecycleCoordinator) Close() {
	lc.once.Do(func() {
		if lc.waitWorkers != nil {
			lc.waitWorkers()
		}
		for _, fn := range lc.stopped {
			if fn != nil {
				fn()
			}
		}
	})
}
