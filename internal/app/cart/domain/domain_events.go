package domain

// DomainEvent is the base interface for all cart events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// ItemAddedEvent is emitted when a product is added to the cart (including
// quantity accumulation on an existing line).
type ItemAddedEvent struct {
	CartID    string
	ProductID string
	Title     string
	Quantity  int64
	ItemCount int64
	Pulse     int64
}

func (e *ItemAddedEvent) EventType() string {
	return "cart.item_added"
}

func (e *ItemAddedEvent) AggregateID() string {
	return e.CartID
}

// ItemRemovedEvent is emitted when a line is removed, either explicitly or
// by updating its quantity to zero.
type ItemRemovedEvent struct {
	CartID    string
	ProductID string
	ItemCount int64
}

func (e *ItemRemovedEvent) EventType() string {
	return "cart.item_removed"
}

func (e *ItemRemovedEvent) AggregateID() string {
	return e.CartID
}

// QuantityChangedEvent is emitted when a line's quantity is replaced.
type QuantityChangedEvent struct {
	CartID    string
	ProductID string
	Quantity  int64
	ItemCount int64
}

func (e *QuantityChangedEvent) EventType() string {
	return "cart.quantity_changed"
}

func (e *QuantityChangedEvent) AggregateID() string {
	return e.CartID
}

// CartClearedEvent is emitted when the cart is emptied after a confirmed
// payment.
type CartClearedEvent struct {
	CartID string
}

func (e *CartClearedEvent) EventType() string {
	return "cart.cleared"
}

func (e *CartClearedEvent) AggregateID() string {
	return e.CartID
}
