// Package threadpool executes tasks on a fixed number of worker goroutines and
// delivers every outcome through a Future.
//
// Constructors
//   - New(opts ...Option): options-based constructor. Without WithWorkers the pool
//     runs runtime.NumCPU() workers; the count never changes afterwards.
//
// Submitting
//   - Submit, SubmitValue, SubmitError queue a closure and return a *Future.
//     Arguments are bound up front with a closure or with Bind / Bind2 / Bind3.
//   - Submit never fails synchronously. If the pool no longer admits work the
//     Future reports ErrBrokenPromise and the closure is never called.
//   - Tasks may submit further tasks to the pool they run in.
//
// Outcomes
// Future.Get blocks until the task settled and returns one of:
//   - the task's value;
//   - the task's error, unchanged (a *PanicError carrying the original value if the task panicked);
//   - ErrBrokenPromise if the task never ran.
//
// Shutdown
//   - Join: waits until no task is queued or running, including work that tasks keep
//     submitting, then stops the workers. Safe to call from many goroutines at once.
//   - Terminate: discards queued tasks (their futures report ErrBrokenPromise), lets
//     running tasks finish, then stops the workers.
//   - Close: for defer; behaves as Join unless the pool was already shut down.
//
// Both Join and Terminate are idempotent and may be combined in any order.
// Neither Get nor Join has a timeout.
//
// Batch helpers
//   - RunAll, Map and ForEach submit a slice of work to an existing pool and collect
//     results in input order with errors aggregated by errors.Join.
package threadpool
