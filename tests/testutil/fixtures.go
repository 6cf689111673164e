package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_cart"
)

// CreateTestCartSlot writes a cart snapshot row directly to the database and
// returns the encoded blob.
func CreateTestCartSlot(t *testing.T, client *spanner.Client, cartID string, items []domain.LineItem) []byte {
	t.Helper()

	blob, err := domain.EncodeSnapshot(items)
	require.NoError(t, err, "failed to encode snapshot")

	CreateRawCartSlot(t, client, cartID, blob)
	return blob
}

// CreateRawCartSlot writes an arbitrary blob into a cart slot, for corruption
// scenarios.
func CreateRawCartSlot(t *testing.T, client *spanner.Client, cartID string, blob []byte) {
	t.Helper()

	mutation := m_cart.NewModel().SaveMut(cartID, blob)
	_, err := client.Apply(context.Background(), []*spanner.Mutation{mutation})
	require.NoError(t, err, "failed to create cart slot")
}

// BackdateCartSlot rewrites a slot's updated_at to a concrete past timestamp
// so staleness queries can see it.
func BackdateCartSlot(t *testing.T, client *spanner.Client, cartID string, updatedAt time.Time) {
	t.Helper()

	mutation := spanner.Update(m_cart.TableName,
		[]string{m_cart.CartID, m_cart.UpdatedAt},
		[]interface{}{cartID, updatedAt})

	_, err := client.Apply(context.Background(), []*spanner.Mutation{mutation})
	require.NoError(t, err, "failed to backdate cart slot")
}
