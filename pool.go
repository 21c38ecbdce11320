package threadpool

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// State is the lifecycle state of a Pool.
type State int

const (
	// StateRunning is the initial state: submissions are admitted.
	StateRunning State = iota
	// StateJoining is entered by the first Join or Close: queued and recursively submitted
	// work is drained before admission closes.
	StateJoining
	// StateTerminated is entered by the first Terminate on a running pool: queued work is discarded.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateJoining:
		return "joining"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Pool executes submitted tasks on a fixed set of worker goroutines and delivers every outcome through a Future.
// Pool is a concrete struct; methods are safe for concurrent use, including from tasks running in the pool.
// Construct it with New and release it with Join, Terminate or Close.
type Pool struct {
	// noCopy prevents accidental copying of the pool.
	//go:nocopy
	nc noCopy

	size  int
	queue *taskQueue

	workersWG sync.WaitGroup
	teardown  *lifecycleCoordinator

	log         logrus.FieldLogger
	instruments *instruments

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	broken    atomic.Int64
}

// noCopy is a vet-recognized marker to discourage copying types with this field embedded.
// It works with the "-copylocks" analyzer via the presence of Lock/Unlock methods.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New creates a Pool using functional options and starts its workers.
// Without WithWorkers (or with WithWorkers(0)) the pool runs runtime.NumCPU() workers.
func New(opts ...Option) (*Pool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	p := &Pool{
		size:        int(cfg.Workers),
		queue:       newTaskQueue(),
		log:         cfg.Logger.WithField("pool", cfg.Name),
		instruments: newInstruments(cfg.Metrics),
	}
	p.teardown = newLifecycleCoordinator(
		p.workersWG.Wait,
		func() {
			p.log.WithFields(logrus.Fields{
				"completed": p.completed.Load(),
				"broken":    p.broken.Load(),
			}).Debug("workers stopped")
		},
	)

	p.workersWG.Add(p.size)
	for i := 0; i < p.size; i++ {
		go newWorker(i, p).run()
	}

	p.log.WithField("workers", p.size).Debug("pool started")
	return p, nil
}

// Size returns the number of workers. It never changes after New.
func (p *Pool) Size() int { return p.size }

// State returns the current lifecycle state.
func (p *Pool) State() State {
	_, _, s := p.queue.snapshot()
	return s
}

// Submit schedules fn for execution and returns the Future of its outcome.
//
// Semantics:
//   - Never blocks beyond acquiring the pool lock and never returns an error by itself.
//   - While the pool admits work (running, or joining before quiescence was observed),
//     fn is queued in FIFO order behind earlier submissions of the same goroutine.
//   - Otherwise fn is never called and the Future reports ErrBrokenPromise.
//   - Tasks may submit to the pool they run in; such submissions follow the same rules.
func Submit[T any](p *Pool, fn func() (T, error)) *Future[T] {
	t, fut := newBoundTask[T](fn)
	p.enqueue(t)
	return fut
}

// SubmitValue schedules an infallible fn. See Submit.
func SubmitValue[T any](p *Pool, fn func() T) *Future[T] {
	return Submit[T](p, TaskValue[T](fn))
}

// SubmitError schedules an error-only fn. See Submit.
func SubmitError(p *Pool, fn func() error) *Future[struct{}] {
	return Submit[struct{}](p, TaskError(fn))
}

func (p *Pool) enqueue(t runnable) {
	// queued is raised before push so a worker's decrement never precedes it.
	p.instruments.queued.Add(1)
	p.submitted.Add(1)
	if !p.queue.push(t) {
		p.instruments.queued.Add(-1)
		p.submitted.Add(-1)
		p.discard(t)
		return
	}
	p.instruments.submitted.Add(1)
}

func (p *Pool) recordExecution(d time.Duration, err error) {
	p.completed.Add(1)
	if err != nil {
		p.failed.Add(1)
	}
	p.instruments.observe(d, err)
}

func (p *Pool) discard(t runnable) {
	t.discard()
	p.broken.Add(1)
	p.instruments.broken.Add(1)
}

// Join waits until the pool is quiescent (no queued and no running task), then stops the workers.
//
// Semantics:
//   - The first call moves a running pool to StateJoining. Work submitted by running tasks,
//     at any depth, is drained before Join returns.
//   - Any submission after Join returned yields a broken Future.
//   - Safe for concurrent use: all callers wait for the same quiescent point and return after
//     the workers have stopped, which happens once.
//   - On a terminated pool Join only waits for the workers to stop.
//   - Calling Join from a task running in the same pool never returns.
func (p *Pool) Join() {
	if p.queue.awaitQuiescence() {
		p.log.Debug("pool quiescent, stopping workers")
	}
	p.teardown.Close()
}

// Terminate discards queued tasks and stops the workers once the running tasks finish.
//
// Semantics:
//   - The first call on a running pool moves it to StateTerminated and settles the Future of every
//     task still queued with ErrBrokenPromise, without running it.
//   - Tasks already running are not interrupted; Terminate waits for them.
//   - Idempotent. On a pool already joining or joined it only waits for Join's outcome.
func (p *Pool) Terminate() {
	drained, first := p.queue.drainAndStop()
	if first {
		p.instruments.queued.Add(-int64(len(drained)))
		for _, t := range drained {
			p.discard(t)
		}
		p.log.WithField("discarded", len(drained)).Info("pool terminated")
	}
	p.teardown.Close()
}

// Close releases the pool at the end of its owning scope (typically via defer).
// If neither Join nor Terminate ran it behaves exactly as Join, draining all pending and
// recursively submitted work; otherwise it only waits for the workers to stop.
func (p *Pool) Close() {
	p.Join()
}

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	Workers   int   // worker count, fixed at construction
	Queued    int   // tasks waiting in the queue
	Active    int   // tasks currently executing
	Submitted int64 // tasks accepted into the queue
	Completed int64 // tasks executed, successfully or not
	Failed    int64 // executed tasks that returned an error or panicked
	Broken    int64 // tasks settled with ErrBrokenPromise
	State     State
}

// Stats returns a snapshot of pool activity. Queued, Active and State are read at one instant.
func (p *Pool) Stats() Stats {
	queued, active, state := p.queue.snapshot()
	return Stats{
		Workers:   p.size,
		Queued:    queued,
		Active:    active,
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
		Broken:    p.broken.Load(),
		State:     state,
	}
}
