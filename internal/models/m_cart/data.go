package m_cart

import "time"

// Data represents the database model for the carts table. Snapshot holds the
// JSON-serialized line item array for the slot.
type Data struct {
	CartID    string
	Snapshot  []byte
	UpdatedAt time.Time
}
