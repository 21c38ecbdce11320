package threadpool

import (
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// taskQueue is the FIFO of pending tasks together with everything a blocking decision depends on:
// the active count, the lifecycle state and the admission flag. All of it is guarded by mu.
//
// Two condition variables share mu: workers wait on workReady, joiners wait on idle.
type taskQueue struct {
	mu        sync.Mutex
	workReady *sync.Cond
	idle      *sync.Cond

	items   *linkedlistqueue.Queue
	active  int
	state   State
	stopped bool // admission closed; workers exit once items is empty
}

func newTaskQueue() *taskQueue {
	q := &taskQueue{items: linkedlistqueue.New(), state: StateRunning}
	q.workReady = sync.NewCond(&q.mu)
	q.idle = sync.NewCond(&q.mu)
	return q
}

// push appends t and wakes one worker. It reports false, leaving t untouched,
// when the queue no longer admits work.
func (q *taskQueue) push(t runnable) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return false
	}
	q.items.Enqueue(t)
	q.workReady.Signal()
	return true
}

// pop removes the head task and counts it as active, blocking while the queue is empty
// and still admitting. It returns false once admission is closed and nothing is left.
func (q *taskQueue) pop() (runnable, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Empty() && !q.stopped {
		q.workReady.Wait()
	}
	v, ok := q.items.Dequeue()
	if !ok {
		return nil, false
	}
	q.active++
	return v.(runnable), true
}

// finish uncounts a task popped earlier and wakes every joiner to re-check quiescence.
func (q *taskQueue) finish() {
	q.mu.Lock()
	q.active--
	q.idle.Broadcast()
	q.mu.Unlock()
}

// awaitQuiescence moves a running queue to joining and blocks until the queue is empty
// with no active task, or admission was closed by someone else. The first caller to observe
// quiescence closes admission and releases the workers; it reports true.
func (q *taskQueue) awaitQuiescence() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.state == StateRunning {
		q.state = StateJoining
	}
	for !q.stopped && !(q.items.Empty() && q.active == 0) {
		q.idle.Wait()
	}
	if q.stopped {
		return false
	}
	q.stopped = true
	q.workReady.Broadcast()
	return true
}

// drainAndStop moves a running queue to terminated, closes admission and removes every queued task.
// Active tasks are not touched. The caller breaks the returned tasks. It reports false, draining
// nothing, when the queue already left the running state.
func (q *taskQueue) drainAndStop() ([]runnable, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.state != StateRunning {
		return nil, false
	}
	q.state = StateTerminated
	q.stopped = true

	drained := make([]runnable, 0, q.items.Size())
	for {
		v, ok := q.items.Dequeue()
		if !ok {
			break
		}
		drained = append(drained, v.(runnable))
	}
	q.workReady.Broadcast()
	q.idle.Broadcast()
	return drained, true
}

// snapshot returns the queue length, the active count and the state at one instant.
func (q *taskQueue) snapshot() (queued, active int, state State) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Size(), q.active, q.state
}
