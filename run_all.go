package threadpool

import (
	"errors"
)

// RunAll submits every task to p and waits for all of them.
//
// Semantics:
// - Results are returned in input order; a failed or broken task leaves the zero value in its slot.
// - The returned error is errors.Join of all task errors (nil if none), each tagged with the
//   task's input index (see ExtractTaskIndex). errors.Is/As still reach the original error.
// - RunAll does not own p: it neither joins nor terminates it. If p stops admitting work midway,
//   the remaining tasks report ErrBrokenPromise.
func RunAll[R any](p *Pool, tasks []Task[R]) ([]R, error) {
	if len(tasks) == 0 {
		return nil, nil
	}
	futures := make([]*Future[R], len(tasks))
	for i, t := range tasks {
		futures[i] = Submit[R](p, t)
	}
	return collect[R](futures)
}

// collect waits for futures in order and aggregates their outcomes.
func collect[R any](futures []*Future[R]) ([]R, error) {
	results := make([]R, len(futures))
	var errs []error
	for i, f := range futures {
		v, err := f.Get()
		if err != nil {
			errs = append(errs, newTaskTaggedError(err, i))
			continue
		}
		results[i] = v
	}
	return results, errors.Join(errs...)
}
