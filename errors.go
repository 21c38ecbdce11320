package threadpool

import "errors"

const Namespace = "threadpool"

var (
	// ErrBrokenPromise is reported by Future.Get when the task behind the future will never run:
	// it was submitted while the pool was not admitting work, or Terminate discarded it while queued.
	ErrBrokenPromise = errors.New(Namespace + ": broken promise")
	// ErrProducerMisuse is returned when a result channel is resolved more than once.
	ErrProducerMisuse = errors.New(Namespace + ": result channel already resolved")
	ErrTaskExited     = errors.New(Namespace + ": task exited its goroutine without returning")
	ErrInvalidConfig  = errors.New(Namespace + ": invalid configuration")
)
