package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/drivecase/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), "id_front", func(_ context.Context, s string) (int, error) {
		time.Sleep(20 * time.Millisecond)
		return len(s), nil
	})

	got, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 8, got)
}

func TestAsync_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called atomic.Bool
	f := async.Async(ctx, 1, func(context.Context, int) (int, error) {
		called.Store(true)
		return 1, nil
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called.Load())
}

func TestAwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)
	f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	delays := []time.Duration{30 * time.Millisecond, 0, 10 * time.Millisecond}

	futures := make([]*async.Future[int], len(delays))
	for i, d := range delays {
		futures[i] = async.Async(ctx, i, func(_ context.Context, n int) (int, error) {
			time.Sleep(d)
			return n * 10, nil
		})
	}

	got, err := async.WaitAll(ctx, futures...)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 20}, got, "results keep argument order")
}

func TestWaitAll_Empty(t *testing.T) {
	t.Parallel()

	got, err := async.WaitAll[string](context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWaitAll_FirstErrorStopsWaiting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	errBoom := errors.New("boom")
	release := make(chan struct{})
	defer close(release)

	var finished atomic.Bool
	slow := async.Async(ctx, 0, func(context.Context, int) (int, error) {
		<-release
		finished.Store(true)
		return 1, nil
	})
	failing := async.Async(ctx, 0, func(context.Context, int) (int, error) {
		return 0, errBoom
	})

	done := make(chan error, 1)
	go func() {
		_, err := async.WaitAll(ctx, slow, failing)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, errBoom)
	case <-time.After(time.Second):
		require.Fail(t, "WaitAll blocked on a slow sibling")
	}
	assert.False(t, finished.Load(), "sibling is still running")
}

func TestWaitAll_ContextEnds(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)
	stuck := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := async.WaitAll(ctx, stuck)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMap_RequestCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := async.Map(ctx, []string{"pending", "approved"}, func(context.Context, string) ([]string, error) {
		<-release
		return nil, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMap(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	names := []string{"id_front", "id_back", "proof_of_address", "id_front"}

	got, err := async.Map(context.Background(), names, func(_ context.Context, s string) (string, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return "folder-" + s, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"folder-id_front", "folder-id_back", "folder-proof_of_address", "folder-id_front"}, got)
	assert.Greater(t, peak.Load(), int32(1), "items run concurrently")
}
