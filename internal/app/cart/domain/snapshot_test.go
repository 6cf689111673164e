package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	items := []LineItem{
		{ProductID: "p1", Title: "Brass Lighter", ImageRef: "img/p1.jpg", Quantity: 2},
		{ProductID: "p2", Title: "Flint Pack", ImageRef: "img/p2.jpg", Quantity: 10},
	}

	blob, err := EncodeSnapshot(items)
	require.NoError(t, err)

	decoded, dropped := DecodeSnapshot(blob)
	assert.Zero(t, dropped)
	assert.Equal(t, items, decoded)
}

func TestDecodeSnapshot(t *testing.T) {
	t.Run("empty blob is an empty cart", func(t *testing.T) {
		items, dropped := DecodeSnapshot(nil)
		assert.Empty(t, items)
		assert.Zero(t, dropped)
	})

	t.Run("non-array blob degrades to an empty cart", func(t *testing.T) {
		items, dropped := DecodeSnapshot([]byte(`{"oops": true}`))
		assert.Empty(t, items)
		assert.Zero(t, dropped)

		items, dropped = DecodeSnapshot([]byte(`not json at all`))
		assert.Empty(t, items)
		assert.Zero(t, dropped)
	})

	t.Run("malformed entry is dropped, valid entries survive", func(t *testing.T) {
		blob := []byte(`[
			{"product_id": "p1", "title": "Good", "image_ref": "img", "quantity": 1},
			{"product_id": 42, "title": "Bad id type", "image_ref": "img", "quantity": 1},
			{"product_id": "p3", "title": "Also good", "image_ref": "img", "quantity": 3}
		]`)

		items, dropped := DecodeSnapshot(blob)
		assert.Equal(t, 1, dropped)
		require.Len(t, items, 2)
		assert.Equal(t, "p1", items[0].ProductID)
		assert.Equal(t, "p3", items[1].ProductID)
	})

	t.Run("quantity outside bounds drops the entry", func(t *testing.T) {
		blob := []byte(`[
			{"product_id": "p1", "title": "Zero", "image_ref": "", "quantity": 0},
			{"product_id": "p2", "title": "Huge", "image_ref": "", "quantity": 100000},
			{"product_id": "p3", "title": "Fine", "image_ref": "", "quantity": 999}
		]`)

		items, dropped := DecodeSnapshot(blob)
		assert.Equal(t, 2, dropped)
		require.Len(t, items, 1)
		assert.Equal(t, "p3", items[0].ProductID)
	})

	t.Run("missing fields drop the entry", func(t *testing.T) {
		blob := []byte(`[
			{"title": "No id", "image_ref": "", "quantity": 1},
			{"product_id": "p2", "quantity": 1}
		]`)

		items, dropped := DecodeSnapshot(blob)
		assert.Equal(t, 2, dropped)
		assert.Empty(t, items)
	})

	t.Run("empty product id drops the entry", func(t *testing.T) {
		blob := []byte(`[{"product_id": "", "title": "A", "image_ref": "", "quantity": 1}]`)

		items, dropped := DecodeSnapshot(blob)
		assert.Equal(t, 1, dropped)
		assert.Empty(t, items)
	})

	t.Run("duplicate product ids keep the first occurrence", func(t *testing.T) {
		blob := []byte(`[
			{"product_id": "p1", "title": "First", "image_ref": "", "quantity": 1},
			{"product_id": "p1", "title": "Second", "image_ref": "", "quantity": 5}
		]`)

		items, dropped := DecodeSnapshot(blob)
		assert.Equal(t, 1, dropped)
		require.Len(t, items, 1)
		assert.Equal(t, "First", items[0].Title)
		assert.Equal(t, int64(1), items[0].Quantity)
	})
}
