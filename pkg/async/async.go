package async

import (
	"context"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to end, whichever is first.
// The underlying computation keeps running after ctx ends.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Async executes fn(ctx, param) in a new goroutine and returns its Future.
// A context cancelled before the goroutine starts yields ctx.Err() without
// calling fn.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// WaitAll waits for every future and returns the results in argument order.
// It stops waiting as soon as any future fails, in completion order, or ctx
// ends, and returns that error along with the results collected so far.
// Futures still in flight are not cancelled.
func WaitAll[U any](ctx context.Context, futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	if len(futures) == 0 {
		return results, nil
	}

	type outcome struct {
		index int
		err   error
	}
	// Buffered so goroutines for abandoned futures never block.
	done := make(chan outcome, len(futures))
	for i, f := range futures {
		go func() {
			_, err := f.AwaitContext(ctx)
			done <- outcome{index: i, err: err}
		}()
	}

	for range futures {
		o := <-done
		if o.err != nil {
			return results, o.err
		}
		results[o.index] = futures[o.index].result
	}

	return results, nil
}

// Map runs fn over every item concurrently and returns the results in input
// order with WaitAll semantics.
func Map[T any, U any](ctx context.Context, items []T, fn func(context.Context, T) (U, error)) ([]U, error) {
	futures := make([]*Future[U], len(items))
	for i, item := range items {
		futures[i] = Async(ctx, item, fn)
	}
	return WaitAll(ctx, futures...)
}
