// Package broadcast delivers summary updates and alert events to in-process
// subscribers such as the status endpoints and the oneshot reporter.
package broadcast

import (
	"sync"

	"github.com/agos-monitor/agos/internal/alert"
)

// Update is what one completed synchronization cycle publishes.
type Update struct {
	Summary alert.Summary

	// Events are the critical transitions detected in this cycle, in
	// fleet order. Usually empty.
	Events []alert.Event
}

// Handler receives every published update. Handlers run synchronously on
// the publisher's goroutine, in subscription order.
type Handler func(Update)

// Broadcaster fans updates out to subscribers.
type Broadcaster struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
	order    []int
}

func New() *Broadcaster {
	return &Broadcaster{
		handlers: make(map[int]Handler),
	}
}

// Subscribe registers a handler and returns a function that removes it.
// Unsubscribing twice is harmless.
func (b *Broadcaster) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if _, ok := b.handlers[id]; !ok {
			return
		}
		delete(b.handlers, id)

		for i, x := range b.order {
			if x == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers an update to every current subscriber.
// A panicking handler is skipped without disturbing the rest.
func (b *Broadcaster) Publish(u Update) {
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		if h, ok := b.handlers[id]; ok {
			hs = append(hs, h)
		}
	}
	b.mu.RUnlock()

	for _, h := range hs {
		deliver(h, u)
	}
}

func deliver(h Handler, u Update) {
	defer func() {
		recover()
	}()
	h(u)
}
