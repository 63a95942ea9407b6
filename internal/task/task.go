// Package task runs one-shot background work with a single typed result.
package task

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
)

// ErrBusy means a guarded action is already outstanding.
var ErrBusy = errors.New("a test is already running")

// Result is the terminal value of a task.
type Result[T any] struct {
	ID    uuid.UUID
	Value T
	Err   error
}

// Message converts the result to display text: the error message on
// failure, or the success text otherwise.
func (r Result[T]) Message(success string) string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return success
}

// Future observes one running task.
type Future[T any] struct {
	id     uuid.UUID
	done   chan struct{}
	result Result[T]
}

// Start runs fn on its own goroutine. A panic in fn becomes the result error.
func Start[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{id: uuid.New(), done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.result = Result[T]{ID: f.id, Err: fmt.Errorf("task panicked: %v\n%s", r, debug.Stack())}
			}
		}()
		value, err := fn(ctx)
		f.result = Result[T]{ID: f.id, Value: value, Err: err}
	}()
	return f
}

// ID identifies the task.
func (f *Future[T]) ID() uuid.UUID {
	return f.id
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result returns the terminal value. It blocks until the task finishes.
func (f *Future[T]) Result() Result[T] {
	<-f.done
	return f.result
}

// Wait blocks until the task finishes or ctx ends. The task keeps running
// when ctx ends first.
func (f *Future[T]) Wait(ctx context.Context) (Result[T], error) {
	select {
	case <-f.done:
		return f.result, nil
	case <-ctx.Done():
		return Result[T]{ID: f.id}, ctx.Err()
	}
}

// Guard admits one outstanding action at a time.
type Guard struct {
	mu   sync.Mutex
	busy bool
}

// Acquire claims the guard or fails with ErrBusy.
func (g *Guard) Acquire() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return ErrBusy
	}
	g.busy = true
	return nil
}

// Release frees the guard. Releasing a free guard is a no-op.
func (g *Guard) Release() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

// Busy reports whether an action is outstanding.
func (g *Guard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}
