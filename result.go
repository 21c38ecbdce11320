package threadpool

import "sync"

type cellState int

const (
	cellPending cellState = iota
	cellFulfilled
	cellFailed
	cellBroken
)

// cell is a one-shot result slot shared by exactly one producer and one Future.
// Its synchronization is local and independent of the pool lock.
type cell[T any] struct {
	mu    sync.Mutex
	done  chan struct{}
	state cellState
	value T
	err   error
}

// producer is the write side of a result channel.
type producer[T any] struct {
	c *cell[T]
}

// Future is the read side of a result channel: it observes the outcome of one submitted task.
// All methods are safe for concurrent use.
type Future[T any] struct {
	c *cell[T]
}

func newResultChannel[T any]() (*producer[T], *Future[T]) {
	c := &cell[T]{done: make(chan struct{})}
	return &producer[T]{c: c}, &Future[T]{c: c}
}

// settle moves the cell out of pending. It returns ErrProducerMisuse if the cell already settled.
func (c *cell[T]) settle(state cellState, v T, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != cellPending {
		return ErrProducerMisuse
	}
	c.state, c.value, c.err = state, v, err
	close(c.done)
	return nil
}

func (p *producer[T]) setValue(v T) error {
	return p.c.settle(cellFulfilled, v, nil)
}

func (p *producer[T]) setError(err error) error {
	var zero T
	return p.c.settle(cellFailed, zero, err)
}

// discard drops the producer. A still pending cell becomes broken; a settled one is left alone.
func (p *producer[T]) discard() {
	var zero T
	_ = p.c.settle(cellBroken, zero, ErrBrokenPromise)
}

// Get blocks until the task settles and returns its outcome:
// the value on success, the task's error unchanged on failure
// (a *PanicError if the task panicked), or ErrBrokenPromise if the task never ran.
// Repeated calls return the same outcome without blocking again.
func (f *Future[T]) Get() (T, error) {
	<-f.c.done
	return f.c.value, f.c.err
}

// Wait blocks until the task settles and returns the error part of its outcome.
func (f *Future[T]) Wait() error {
	_, err := f.Get()
	return err
}

// Done returns a channel that is closed once the task has settled.
func (f *Future[T]) Done() <-chan struct{} { return f.c.done }

// Broken reports whether the future settled without its task ever running.
// It does not block; a pending future is not broken.
func (f *Future[T]) Broken() bool {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	return f.c.state == cellBroken
}
