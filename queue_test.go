package threadpool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubTask struct {
	id        int
	discarded bool
}

func (s *stubTask) call() error         { return nil }
func (s *stubTask) resolve(error) error { return nil }
func (s *stubTask) discard()            { s.discarded = true }

func TestTaskQueue_FIFOAndActiveCount(t *testing.T) {
	q := newTaskQueue()

	for i := 0; i < 3; i++ {
		require.True(t, q.push(&stubTask{id: i}))
	}
	queued, active, state := q.snapshot()
	require.Equal(t, 3, queued)
	require.Equal(t, 0, active)
	require.Equal(t, StateRunning, state)

	for i := 0; i < 3; i++ {
		got, ok := q.pop()
		require.True(t, ok)
		require.Equal(t, i, got.(*stubTask).id)
	}
	_, active, _ = q.snapshot()
	require.Equal(t, 3, active)

	q.finish()
	q.finish()
	q.finish()
	_, active, _ = q.snapshot()
	require.Equal(t, 0, active)
}

func TestTaskQueue_PopBlocksUntilPushOrStop(t *testing.T) {
	q := newTaskQueue()

	popped := make(chan bool, 1)
	go func() {
		_, ok := q.pop()
		popped <- ok
	}()

	select {
	case <-popped:
		t.Fatal("pop returned on an empty admitting queue")
	case <-time.After(50 * time.Millisecond):
	}

	require.True(t, q.push(&stubTask{}))
	require.True(t, <-popped)
	q.finish()

	go func() {
		_, ok := q.pop()
		popped <- ok
	}()
	require.True(t, q.awaitQuiescence())

	select {
	case ok := <-popped:
		require.False(t, ok, "pop must report shutdown once admission closed on an empty queue")
	case <-time.After(time.Second):
		t.Fatal("pop did not wake up on shutdown")
	}
}

func TestTaskQueue_AwaitQuiescenceWaitsForActive(t *testing.T) {
	q := newTaskQueue()
	require.True(t, q.push(&stubTask{}))
	_, ok := q.pop()
	require.True(t, ok)

	first := make(chan bool, 2)
	go func() { first <- q.awaitQuiescence() }()
	go func() { first <- q.awaitQuiescence() }()

	select {
	case <-first:
		t.Fatal("awaitQuiescence returned while a task was active")
	case <-time.After(50 * time.Millisecond):
	}
	_, _, state := q.snapshot()
	require.Equal(t, StateJoining, state)

	// still admitting while joining and not yet quiescent
	require.True(t, q.push(&stubTask{}))
	nested, ok := q.pop()
	require.True(t, ok)
	require.NotNil(t, nested)
	q.finish()

	select {
	case <-first:
		t.Fatal("awaitQuiescence returned while a task was active")
	case <-time.After(20 * time.Millisecond):
	}

	q.finish()
	a, b := <-first, <-first
	require.True(t, a != b, "exactly one caller closes admission")
	require.False(t, q.push(&stubTask{}))
}

func TestTaskQueue_DrainAndStop(t *testing.T) {
	q := newTaskQueue()
	for i := 0; i < 4; i++ {
		require.True(t, q.push(&stubTask{id: i}))
	}
	_, ok := q.pop()
	require.True(t, ok)

	drained, first := q.drainAndStop()
	require.True(t, first)
	require.Len(t, drained, 3)
	for i, d := range drained {
		require.Equal(t, i+1, d.(*stubTask).id)
	}

	queued, active, state := q.snapshot()
	require.Equal(t, 0, queued)
	require.Equal(t, 1, active, "active task is not disturbed")
	require.Equal(t, StateTerminated, state)
	require.False(t, q.push(&stubTask{}))

	drained, first = q.drainAndStop()
	require.False(t, first)
	require.Empty(t, drained)

	q.finish()
	_, ok = q.pop()
	require.False(t, ok)
}

func TestTaskQueue_DrainAndStopAfterJoinIsNoop(t *testing.T) {
	q := newTaskQueue()
	require.True(t, q.awaitQuiescence())

	drained, first := q.drainAndStop()
	require.False(t, first)
	require.Empty(t, drained)
	_, _, state := q.snapshot()
	require.Equal(t, StateJoining, state)
}
