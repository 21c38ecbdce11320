package threadpool

// Map applies fn to every item on p and returns the results in input order with the aggregated error.
// It delegates to RunAll after binding each item into a Task.
func Map[T, R any](p *Pool, items []T, fn func(T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	tasks := make([]Task[R], 0, len(items))
	for i := range items {
		tasks = append(tasks, Bind(fn, items[i]))
	}
	return RunAll[R](p, tasks)
}
