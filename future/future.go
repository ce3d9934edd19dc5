/*
Package future provides a single-settlement handle to the result of an asynchronous
operation.

A Future starts pending and settles exactly once, with either a value or an error. Later
settlement attempts are ignored. There is no cancellation: a caller that stops waiting
(through the context passed to Await) leaves the underlying work running, and a future
whose work never signals stays pending forever.

Futures compose strictly in sequence through Then and Chain. Each stage starts only
after its predecessor has settled successfully; a failure skips every later stage and
settles the composed future with the same error.
*/
package future

import (
	"context"
	"sync"
)

// Future is the eventual result of an asynchronous operation.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// New returns a pending future together with its settle functions. Only the first call
// to either function has an effect.
func New[T any]() (future *Future[T], resolve func(T), reject func(error)) {
	future = &Future[T]{done: make(chan struct{})}
	resolve = func(value T) {
		future.settle(value, nil)
	}
	reject = func(err error) {
		var zero T
		future.settle(zero, err)
	}
	return future, resolve, reject
}

// Go runs work on its own goroutine and settles the returned future with its result.
func Go[T any](work func() (T, error)) *Future[T] {
	future, resolve, reject := New[T]()
	go func() {
		value, err := work()
		if err != nil {
			reject(err)
			return
		}
		resolve(value)
	}()
	return future
}

// Resolved returns a future already settled with value.
func Resolved[T any](value T) *Future[T] {
	future, resolve, _ := New[T]()
	resolve(value)
	return future
}

// Rejected returns a future already settled with err.
func Rejected[T any](err error) *Future[T] {
	future, _, reject := New[T]()
	reject(err)
	return future
}

func (future *Future[T]) settle(value T, err error) {
	future.once.Do(func() {
		future.value = value
		future.err = err
		close(future.done)
	})
}

// Done is closed once the future has settled.
func (future *Future[T]) Done() <-chan struct{} {
	return future.done
}

// Await blocks until the future settles or ctx is done. When ctx finishes first its
// error is returned and the future keeps running.
func (future *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-future.done:
		return future.value, future.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the settled value and error without blocking. settled is false while
// the future is still pending.
func (future *Future[T]) Result() (value T, settled bool, err error) {
	select {
	case <-future.done:
		return future.value, true, future.err
	default:
		var zero T
		return zero, false, nil
	}
}

// Then returns a future settled with next applied to the value of source. An error from
// source or next settles the result with that error, unchanged.
func Then[T, U any](source *Future[T], next func(T) (U, error)) *Future[U] {
	result, resolve, reject := New[U]()
	go func() {
		<-source.done
		if source.err != nil {
			reject(source.err)
			return
		}
		value, err := next(source.value)
		if err != nil {
			reject(err)
			return
		}
		resolve(value)
	}()
	return result
}

// Chain is Then for a next stage that is itself asynchronous.
func Chain[T, U any](source *Future[T], next func(T) *Future[U]) *Future[U] {
	result, resolve, reject := New[U]()
	go func() {
		<-source.done
		if source.err != nil {
			reject(source.err)
			return
		}
		stage := next(source.value)
		<-stage.done
		if stage.err != nil {
			reject(stage.err)
			return
		}
		resolve(stage.value)
	}()
	return result
}
