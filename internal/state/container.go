// Package state holds the client's best-known copy of remote entities.
//
// A Container is the only place coordinators write to; readers take
// snapshots and may subscribe to be told when the value changes.
package state

import "sync"

// Container holds one value of T. Get returns a copy produced by the clone
// function so callers can never mutate the stored value behind the lock.
type Container[T any] struct {
	mu    sync.RWMutex
	value T
	clone func(T) T
	subs  []chan struct{}
}

// New creates a container holding initial. clone may be nil when T has
// value semantics.
func New[T any](initial T, clone func(T) T) *Container[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Container[T]{value: clone(initial), clone: clone}
}

// Get returns a snapshot of the current value.
func (c *Container[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clone(c.value)
}

// Set replaces the value and notifies subscribers.
func (c *Container[T]) Set(v T) {
	c.mu.Lock()
	c.value = c.clone(v)
	c.mu.Unlock()
	c.notify()
}

// Update applies fn to the latest value atomically and stores the result.
// fn receives a snapshot it may modify freely. The stored value is returned.
func (c *Container[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	next := c.clone(fn(c.clone(c.value)))
	c.value = next
	out := c.clone(next)
	c.mu.Unlock()
	c.notify()
	return out
}

// Subscribe returns a channel that receives a signal after every change.
// Signals coalesce: a slow reader sees at most one pending signal.
func (c *Container[T]) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

// Unsubscribe stops signals to ch and closes it.
func (c *Container[T]) Unsubscribe(ch <-chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s == ch {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			close(s)
			return
		}
	}
}

func (c *Container[T]) notify() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
