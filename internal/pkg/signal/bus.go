// Package signal provides a small in-process publish/subscribe bus for UI
// attention signals (cart badge pulses, toast notifications). Subscribers are
// registered explicitly against a bus instance; there is no package-level
// mutable registration state.
package signal

import "sync"

// Event is a named signal with an optional payload.
type Event struct {
	Name    string
	Payload map[string]string
}

// Signal names published by the application.
const (
	CartBadgePulse = "cart.badge_pulse"
	CartItemAdded  = "cart.item_added"
	CartCleared    = "cart.cleared"
)

// Handler receives published events. Handlers must not block; slow consumers
// should hand off to their own goroutine.
type Handler func(Event)

// Bus fans events out to subscribed handlers. Safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string]map[int]Handler),
	}
}

// Subscribe registers a handler for the named event and returns an
// unsubscribe function. Calling the unsubscribe function more than once is
// harmless.
func (b *Bus) Subscribe(name string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[name] == nil {
		b.subs[name] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.subs[name][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[name], id)
	}
}

// Publish delivers the event to all handlers subscribed to its name.
// Events with no subscribers are dropped.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[ev.Name]))
	for _, h := range b.subs[ev.Name] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}
