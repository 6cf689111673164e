package cart

import (
	"strconv"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/signal"
)

// PublishEvents translates recorded cart domain events into signal bus
// events for UI observers (badge pulse, toasts).
func PublishEvents(bus *signal.Bus, events []domain.DomainEvent) {
	if bus == nil {
		return
	}

	for _, ev := range events {
		switch e := ev.(type) {
		case *domain.ItemAddedEvent:
			bus.Publish(signal.Event{
				Name: signal.CartBadgePulse,
				Payload: map[string]string{
					"cart_id": e.CartID,
					"pulse":   strconv.FormatInt(e.Pulse, 10),
				},
			})
			bus.Publish(signal.Event{
				Name: signal.CartItemAdded,
				Payload: map[string]string{
					"cart_id":    e.CartID,
					"product_id": e.ProductID,
					"title":      e.Title,
					"quantity":   strconv.FormatInt(e.Quantity, 10),
				},
			})
		case *domain.CartClearedEvent:
			bus.Publish(signal.Event{
				Name:    signal.CartCleared,
				Payload: map[string]string{"cart_id": e.CartID},
			})
		}
	}
}
