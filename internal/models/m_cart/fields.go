package m_cart

// Field name constants for the carts table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "carts"

	CartID    = "cart_id"
	Snapshot  = "snapshot"
	UpdatedAt = "updated_at"
)
