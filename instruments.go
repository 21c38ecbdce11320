package threadpool

import (
	"time"

	"github.com/ygrebnov/threadpool/metrics"
)

// Instrument names registered with the metrics provider.
const (
	MetricTasksSubmitted = "threadpool_tasks_submitted_total"
	MetricTasksCompleted = "threadpool_tasks_completed_total"
	MetricTasksErrors    = "threadpool_tasks_errors_total"
	MetricTasksBroken    = "threadpool_tasks_broken_total"
	MetricTasksActive    = "threadpool_tasks_active"
	MetricTasksQueued    = "threadpool_tasks_queued"
	MetricTaskDuration   = "threadpool_task_duration_seconds"
)

type instruments struct {
	submitted metrics.Counter
	completed metrics.Counter
	errors    metrics.Counter
	broken    metrics.Counter
	active    metrics.UpDownCounter
	queued    metrics.UpDownCounter
	duration  metrics.Histogram
}

func newInstruments(p metrics.Provider) *instruments {
	one := metrics.WithUnit("1")
	return &instruments{
		submitted: p.Counter(MetricTasksSubmitted, one, metrics.WithDescription("Tasks accepted into the queue")),
		completed: p.Counter(MetricTasksCompleted, one, metrics.WithDescription("Tasks executed, successfully or not")),
		errors:    p.Counter(MetricTasksErrors, one, metrics.WithDescription("Tasks that returned an error or panicked")),
		broken:    p.Counter(MetricTasksBroken, one, metrics.WithDescription("Tasks settled without running")),
		active:    p.UpDownCounter(MetricTasksActive, one, metrics.WithDescription("Tasks currently executing")),
		queued:    p.UpDownCounter(MetricTasksQueued, one, metrics.WithDescription("Tasks waiting in the queue")),
		duration: p.Histogram(
			MetricTaskDuration,
			metrics.WithUnit("seconds"),
			metrics.WithDescription("Task execution time"),
		),
	}
}

func (in *instruments) observe(d time.Duration, err error) {
	in.completed.Add(1)
	if err != nil {
		in.errors.Add(1)
	}
	in.duration.Record(d.Seconds())
}
