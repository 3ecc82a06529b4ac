package async

import (
	"context"
	"time"

	"github.com/tenantkit/tenantkit/tenant"
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

// AwaitWithTimeout waits for completion up to the given timeout, returning
// ErrTimeout if the function is still running when it elapses.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks whether the asynchronous function has finished, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Go executes fn in a new goroutine and returns a Future for its result.
//
// The goroutine is its own unit of work: it receives a fresh tenant scope
// with snapshots of the parent context's entries applied, so tenant identity
// follows the computation without sharing the parent's scope. The parent's
// cancellation and deadline still apply.
func Go[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	childCtx := detachScope(ctx)

	go func() {
		defer close(f.done)

		// Early exit prevents needless work when context is pre-canceled.
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.result, f.err = fn(childCtx, param)
	}()

	return f
}

// detachScope builds the child context: same cancellation chain, but a fresh
// scope seeded from per-entry snapshots of the parent's scope.
func detachScope(ctx context.Context) context.Context {
	parent, ok := tenant.ScopeFrom(ctx)
	if !ok {
		return ctx
	}

	child := tenant.NewScope()
	for _, key := range parent.Keys() {
		if snap, ok := parent.Snapshot(key); ok {
			_ = child.Apply(snap)
		}
	}
	return tenant.NewContext(ctx, child)
}

// WaitAll waits for all futures to complete and returns their results along
// with the first error encountered.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var firstErr error

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return results, firstErr
}
