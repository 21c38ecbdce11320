package threadpool

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResultChannel_SettlesOnce(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		settle    func(p *producer[int]) error
		wantValue int
		wantErr   error
	}{
		{
			name:      "value",
			settle:    func(p *producer[int]) error { return p.setValue(42) },
			wantValue: 42,
		},
		{
			name:    "error",
			settle:  func(p *producer[int]) error { return p.setError(boom) },
			wantErr: boom,
		},
		{
			name:    "discarded while pending",
			settle:  func(p *producer[int]) error { p.discard(); return nil },
			wantErr: ErrBrokenPromise,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, f := newResultChannel[int]()
			require.NoError(t, tt.settle(p))

			// every later write is rejected and leaves the outcome unchanged
			require.ErrorIs(t, p.setValue(7), ErrProducerMisuse)
			require.ErrorIs(t, p.setError(errors.New("late")), ErrProducerMisuse)
			p.discard()

			for i := 0; i < 3; i++ {
				v, err := f.Get()
				require.Equal(t, tt.wantValue, v)
				require.Equal(t, tt.wantErr, err)
			}
			require.Equal(t, errors.Is(tt.wantErr, ErrBrokenPromise), f.Broken())
		})
	}
}

func TestFuture_GetBlocksUntilSettled(t *testing.T) {
	p, f := newResultChannel[string]()

	got := make(chan string, 1)
	go func() {
		v, _ := f.Get()
		got <- v
	}()

	select {
	case <-got:
		t.Fatal("Get returned before the channel settled")
	case <-f.Done():
		t.Fatal("Done closed before the channel settled")
	case <-time.After(50 * time.Millisecond):
	}
	require.False(t, f.Broken())

	require.NoError(t, p.setValue("ok"))

	select {
	case v := <-got:
		require.Equal(t, "ok", v)
	case <-time.After(time.Second):
		t.Fatal("Get did not return after the channel settled")
	}
	require.NoError(t, f.Wait())
}

func TestFuture_ConcurrentReaders(t *testing.T) {
	p, f := newResultChannel[int]()

	const readers = 16
	var wg sync.WaitGroup
	results := make([]int, readers)
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], _ = f.Get()
		}(i)
	}

	require.NoError(t, p.setValue(9))
	wg.Wait()
	for _, v := range results {
		require.Equal(t, 9, v)
	}
}

func TestPanicError_UnwrapsErrorPayload(t *testing.T) {
	cause := errors.New("cause")

	pe := newPanicError(cause)
	require.ErrorIs(t, pe, cause)
	require.Contains(t, pe.Error(), "task panicked: cause")
	require.NotEmpty(t, pe.Stack)

	require.Nil(t, newPanicError(8).Unwrap())
}
