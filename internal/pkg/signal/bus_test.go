package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(CartBadgePulse, func(ev Event) {
		got = append(got, ev)
	})

	bus.Publish(Event{Name: CartBadgePulse, Payload: map[string]string{"pulse": "1"}})
	bus.Publish(Event{Name: CartCleared})

	assert.Len(t, got, 1, "only the subscribed name is delivered")
	assert.Equal(t, "1", got[0].Payload["pulse"])
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()

	a, b := 0, 0
	bus.Subscribe(CartItemAdded, func(Event) { a++ })
	bus.Subscribe(CartItemAdded, func(Event) { b++ })

	bus.Publish(Event{Name: CartItemAdded})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsub := bus.Subscribe(CartBadgePulse, func(Event) { calls++ })

	bus.Publish(Event{Name: CartBadgePulse})
	unsub()
	bus.Publish(Event{Name: CartBadgePulse})

	assert.Equal(t, 1, calls)

	// A second unsubscribe is harmless.
	unsub()
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()

	// Must not panic or block.
	bus.Publish(Event{Name: CartCleared})
}
