package domain

// Cart is the aggregate root for a session's shopping cart. Line items keep
// insertion order for display; product ids are unique within the cart and
// repeated adds accumulate quantity instead of duplicating the line.
type Cart struct {
	id    string
	items []LineItem

	// badgePulse increases on every successful add so observers can replay
	// the badge attention animation. It is session state, not persisted.
	badgePulse int64

	// Domain events to be published
	events []DomainEvent
}

// NewCart creates an empty cart aggregate.
func NewCart(id string) *Cart {
	return &Cart{
		id:     id,
		items:  make([]LineItem, 0),
		events: make([]DomainEvent, 0),
	}
}

// ReconstructCart reconstitutes a cart from a validated snapshot.
func ReconstructCart(id string, items []LineItem) *Cart {
	c := NewCart(id)
	c.items = append(c.items, items...)
	return c
}

// ID returns the cart id.
func (c *Cart) ID() string { return c.id }

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// BadgePulse returns the current badge pulse counter.
func (c *Cart) BadgePulse() int64 { return c.badgePulse }

// DomainEvents returns the recorded, unpublished events.
func (c *Cart) DomainEvents() []DomainEvent { return c.events }

// ClearEvents discards recorded events (called after publishing).
func (c *Cart) ClearEvents() {
	c.events = make([]DomainEvent, 0)
}

// AddItem merges quantity into an existing line for the product or appends a
// new line at the end. The incoming quantity and the accumulated total are
// both clamped to [MinQuantity, MaxQuantity].
func (c *Cart) AddItem(productID, title, imageRef string, quantity int64) error {
	if productID == "" {
		return ErrEmptyProductID
	}

	quantity = ClampQuantity(quantity)

	merged := false
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = ClampQuantity(c.items[i].Quantity + quantity)
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, LineItem{
			ProductID: productID,
			Title:     title,
			ImageRef:  imageRef,
			Quantity:  quantity,
		})
	}

	c.badgePulse++
	c.recordEvent(&ItemAddedEvent{
		CartID:    c.id,
		ProductID: productID,
		Title:     title,
		Quantity:  quantity,
		ItemCount: c.ItemCount(),
		Pulse:     c.badgePulse,
	})

	return nil
}

// RemoveItem removes the line for the product. Removing an absent product is
// a no-op, not an error.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.recordEvent(&ItemRemovedEvent{
				CartID:    c.id,
				ProductID: productID,
				ItemCount: c.ItemCount(),
			})
			return
		}
	}
}

// UpdateQuantity replaces the stored quantity for the product. A quantity of
// zero or less removes the line. A quantity above MaxQuantity is rejected
// with ErrQuantityOutOfRange and the line is left unchanged. Updating an
// absent product is a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int64) error {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}
	if quantity > MaxQuantity {
		return ErrQuantityOutOfRange
	}

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			c.recordEvent(&QuantityChangedEvent{
				CartID:    c.id,
				ProductID: productID,
				Quantity:  quantity,
				ItemCount: c.ItemCount(),
			})
			return nil
		}
	}
	return nil
}

// Clear empties the cart. Intended call site is payment confirmation; it is
// never called speculatively.
func (c *Cart) Clear() {
	c.items = make([]LineItem, 0)
	c.recordEvent(&CartClearedEvent{CartID: c.id})
}

// IsInCart reports whether the product has a line in the cart.
func (c *Cart) IsInCart(productID string) bool {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return true
		}
	}
	return false
}

// ItemCount returns the sum of all line quantities, recomputed on every call.
func (c *Cart) ItemCount() int64 {
	var total int64
	for i := range c.items {
		total += c.items[i].Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// recordEvent adds a domain event to the list of events.
func (c *Cart) recordEvent(event DomainEvent) {
	c.events = append(c.events, event)
}
