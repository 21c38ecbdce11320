package threadpool

// Task is the closure shape executed by the pool: it takes no arguments and returns a result of type T and an error.
// Arguments are bound up front, either by capturing them or with Bind / Bind2 / Bind3.
//
// Example:
//
//	t := TaskFunc(func() (int, error) { return 42, nil })
//	f := Submit(pool, t)
type Task[T any] func() (T, error)

// TaskFunc adapts func() (T, error) to Task[T].
func TaskFunc[T any](fn func() (T, error)) Task[T] { return Task[T](fn) }

// TaskValue adapts func() T to Task[T].
func TaskValue[T any](fn func() T) Task[T] {
	return func() (T, error) { return fn(), nil }
}

// TaskError adapts func() error to Task[struct{}].
func TaskError(fn func() error) Task[struct{}] {
	return func() (struct{}, error) { return struct{}{}, fn() }
}

// Bind pre-binds one argument to fn.
func Bind[A, T any](fn func(A) (T, error), a A) Task[T] {
	return func() (T, error) { return fn(a) }
}

// Bind2 pre-binds two arguments to fn.
func Bind2[A, B, T any](fn func(A, B) (T, error), a A, b B) Task[T] {
	return func() (T, error) { return fn(a, b) }
}

// Bind3 pre-binds three arguments to fn.
func Bind3[A, B, C, T any](fn func(A, B, C) (T, error), a A, b B, c C) Task[T] {
	return func() (T, error) { return fn(a, b, c) }
}

// runnable is the type-erased unit of work stored in the queue.
// Exactly one of (call, then resolve) or discard happens to it.
type runnable interface {
	// call runs the bound closure and keeps its value for resolve.
	call() error
	// resolve settles the result channel with the kept value, or with err when non-nil.
	resolve(err error) error
	// discard breaks the result channel without running the closure.
	discard()
}

// boundTask pairs a closure with the producer of its result channel.
type boundTask[T any] struct {
	fn    Task[T]
	out   *producer[T]
	value T
}

func newBoundTask[T any](fn Task[T]) (*boundTask[T], *Future[T]) {
	out, fut := newResultChannel[T]()
	return &boundTask[T]{fn: fn, out: out}, fut
}

func (t *boundTask[T]) call() error {
	v, err := t.fn()
	t.value = v
	return err
}

func (t *boundTask[T]) resolve(err error) error {
	if err != nil {
		return t.out.setError(err)
	}
	return t.out.setValue(t.value)
}

func (t *boundTask[T]) discard() { t.out.discard() }
