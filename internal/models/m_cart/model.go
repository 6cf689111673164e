package m_cart

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the carts table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// SaveMut creates a Spanner mutation writing the full snapshot for a slot.
// The slot is replaced wholesale on every cart mutation.
func (m *Model) SaveMut(cartID string, snapshot []byte) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			CartID,
			Snapshot,
			UpdatedAt,
		},
		[]interface{}{
			cartID,
			snapshot,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation removing a cart slot.
func (m *Model) DeleteMut(cartID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{cartID})
}
