package threadpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLifecycle_WaitsWorkersThenRunsHooksInOrder(t *testing.T) {
	steps := make(chan string, 10)

	var workers sync.WaitGroup
	workers.Add(1)

	lc := newLifecycleCoordinator(
		func() { workers.Wait(); steps <- "workers" },
		func() { steps <- "first" },
		nil,
		func() { steps <- "second" },
	)

	done := make(chan struct{})
	go func() { lc.Close(); close(done) }()

	select {
	case s := <-steps:
		t.Fatalf("step %q ran before workers were released", s)
	case <-time.After(50 * time.Millisecond):
	}

	workers.Done()
	<-done

	close(steps)
	var got []string
	for s := range steps {
		got = append(got, s)
	}
	require.Equal(t, []string{"workers", "first", "second"}, got)
}

func TestLifecycle_Idempotent_ConcurrentClose(t *testing.T) {
	var runs atomic.Int32
	release := make(chan struct{})

	lc := newLifecycleCoordinator(func() { <-release }, func() { runs.Add(1) })

	const callers = 8
	var returned atomic.Int32
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			lc.Close()
			returned.Add(1)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	require.EqualValues(t, 0, returned.Load(), "no caller may return before the sequence completed")

	close(release)
	wg.Wait()
	require.EqualValues(t, 1, runs.Load())
	require.EqualValues(t, callers, returned.Load())
}
