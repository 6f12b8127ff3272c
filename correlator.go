package mxw01

import (
	"context"
	"log"
	"sync"
)

// Waiter is the pending slot for a single response.
type Waiter struct {
	cmd Command
	c   chan result
}

type result struct {
	n   Notification
	err error
}

// Wait blocks until the response arrives or ctx is done.
func (w *Waiter) Wait(ctx context.Context) (Notification, error) {
	select {
	case r := <-w.c:
		return r.n, r.err
	case <-ctx.Done():
		return Notification{}, ctx.Err()
	}
}

// Correlator matches notifications with pending commands.
// It holds at most one waiter per command identifier,
// so callers must serialize requests that share an identifier.
type Correlator struct {
	mu        sync.Mutex
	pending   map[Command]*Waiter
	observers map[int]func(Notification)
	nextID    int
}

// NewCorrelator returns an empty correlator.
func NewCorrelator() *Correlator {
	return &Correlator{
		pending:   make(map[Command]*Waiter),
		observers: make(map[int]func(Notification)),
	}
}

// Expect registers a waiter for cmd, replacing any existing one.
func (c *Correlator) Expect(cmd Command) *Waiter {
	w := &Waiter{cmd: cmd, c: make(chan result, 1)}
	c.mu.Lock()
	if _, ok := c.pending[cmd]; ok && verbose {
		log.Printf("replacing pending waiter for %v", cmd)
	}
	c.pending[cmd] = w
	c.mu.Unlock()
	return w
}

// Cancel removes w if it is still the waiter registered for its command.
func (c *Correlator) Cancel(w *Waiter) {
	c.mu.Lock()
	if c.pending[w.cmd] == w {
		delete(c.pending, w.cmd)
	}
	c.mu.Unlock()
}

// Pending reports whether a waiter is registered for cmd.
func (c *Correlator) Pending(cmd Command) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[cmd]
	return ok
}

// Subscribe registers f to be called with every notification,
// whether or not a waiter matched it. The returned function
// removes the subscription.
func (c *Correlator) Subscribe(f func(Notification)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = f
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Dispatch decodes a raw notification, publishes it to all
// subscribers, and resolves the matching waiter if there is one.
func (c *Correlator) Dispatch(data []byte) Notification {
	n := DecodeNotification(data)
	if verbose {
		log.Printf("notification: % X", data)
	}
	c.mu.Lock()
	observers := make([]func(Notification), 0, len(c.observers))
	for _, f := range c.observers {
		observers = append(observers, f)
	}
	w := c.pending[n.Command]
	delete(c.pending, n.Command)
	c.mu.Unlock()
	for _, f := range observers {
		f(n)
	}
	if w != nil {
		w.c <- result{n: n}
	}
	return n
}

// Fail resolves every pending waiter with err.
func (c *Correlator) Fail(err error) {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[Command]*Waiter)
	c.mu.Unlock()
	for _, w := range pending {
		w.c <- result{err: err}
	}
}
