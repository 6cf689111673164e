package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

// memStore is an in-memory SnapshotStore. Mutations are recorded as direct
// writes and returned as nil, which commit plans ignore.
type memStore struct {
	blobs   map[string][]byte
	loads   int
	loadErr error
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (s *memStore) Load(_ context.Context, cartID string) ([]byte, error) {
	s.loads++
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.blobs[cartID], nil
}

func (s *memStore) SaveMut(cartID string, blob []byte) *spanner.Mutation {
	s.blobs[cartID] = blob
	return nil
}

func (s *memStore) DeleteMut(cartID string) *spanner.Mutation {
	delete(s.blobs, cartID)
	return nil
}

func (s *memStore) ListStale(context.Context, time.Time, int64) ([]string, error) {
	return nil, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRegistry_WithCart(t *testing.T) {
	t.Run("loads the stored snapshot on first touch", func(t *testing.T) {
		store := newMemStore()
		blob, err := domain.EncodeSnapshot([]domain.LineItem{
			{ProductID: "p1", Title: "A", Quantity: 2},
		})
		require.NoError(t, err)
		store.blobs["cart-1"] = blob

		r := NewRegistry(store, testLogger())

		err = r.WithCart(context.Background(), "cart-1", func(c *domain.Cart) error {
			assert.Equal(t, int64(2), c.ItemCount())
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("loads only once per cart", func(t *testing.T) {
		store := newMemStore()
		r := NewRegistry(store, testLogger())

		for i := 0; i < 3; i++ {
			err := r.WithCart(context.Background(), "cart-1", func(*domain.Cart) error { return nil })
			require.NoError(t, err)
		}
		assert.Equal(t, 1, store.loads)
	})

	t.Run("same id yields the same aggregate", func(t *testing.T) {
		store := newMemStore()
		r := NewRegistry(store, testLogger())

		err := r.WithCart(context.Background(), "cart-1", func(c *domain.Cart) error {
			return c.AddItem("p1", "A", "", 1)
		})
		require.NoError(t, err)

		err = r.WithCart(context.Background(), "cart-1", func(c *domain.Cart) error {
			assert.True(t, c.IsInCart("p1"))
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("failed load degrades to an empty cart", func(t *testing.T) {
		store := newMemStore()
		store.loadErr = errors.New("spanner unavailable")
		r := NewRegistry(store, testLogger())

		err := r.WithCart(context.Background(), "cart-1", func(c *domain.Cart) error {
			assert.True(t, c.IsEmpty())
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("corrupt snapshot degrades to the valid subset", func(t *testing.T) {
		store := newMemStore()
		store.blobs["cart-1"] = []byte(`[
			{"product_id": "p1", "title": "Good", "image_ref": "", "quantity": 1},
			{"product_id": null, "title": "Bad", "image_ref": "", "quantity": 1}
		]`)
		r := NewRegistry(store, testLogger())

		err := r.WithCart(context.Background(), "cart-1", func(c *domain.Cart) error {
			assert.Equal(t, int64(1), c.ItemCount())
			assert.True(t, c.IsInCart("p1"))
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("callback error propagates", func(t *testing.T) {
		r := NewRegistry(newMemStore(), testLogger())

		want := errors.New("domain said no")
		err := r.WithCart(context.Background(), "cart-1", func(*domain.Cart) error {
			return want
		})
		assert.ErrorIs(t, err, want)
	})
}

func TestRegistry_Evict(t *testing.T) {
	store := newMemStore()
	r := NewRegistry(store, testLogger())

	require.NoError(t, r.WithCart(context.Background(), "cart-1", func(*domain.Cart) error { return nil }))
	r.Evict("cart-1")
	require.NoError(t, r.WithCart(context.Background(), "cart-1", func(*domain.Cart) error { return nil }))

	assert.Equal(t, 2, store.loads, "eviction forces a reload")
}
