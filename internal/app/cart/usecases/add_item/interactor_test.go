package add_item

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/signal"
)

// memStore records snapshot writes in memory and returns nil mutations,
// which commit plans ignore.
type memStore struct {
	blobs map[string][]byte
	saves int
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (s *memStore) Load(_ context.Context, cartID string) ([]byte, error) {
	return s.blobs[cartID], nil
}

func (s *memStore) SaveMut(cartID string, blob []byte) *spanner.Mutation {
	s.blobs[cartID] = blob
	s.saves++
	return nil
}

func (s *memStore) DeleteMut(cartID string) *spanner.Mutation {
	delete(s.blobs, cartID)
	return nil
}

func (s *memStore) ListStale(context.Context, time.Time, int64) ([]string, error) {
	return nil, nil
}

func newTestInteractor(store *memStore, bus *signal.Bus) *Interactor {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	registry := cart.NewRegistry(store, log)
	return NewInteractor(registry, store, committer.NewCommitter(nil), bus, log)
}

func TestAddItem(t *testing.T) {
	t.Run("adds and reports the new totals", func(t *testing.T) {
		store := newMemStore()
		i := newTestInteractor(store, nil)

		result, err := i.Execute(context.Background(), &Request{
			CartID:    "cart-1",
			ProductID: "p1",
			Title:     "Brass Lighter",
			ImageRef:  "img/p1.jpg",
			Quantity:  2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.ItemCount)
		assert.Equal(t, int64(1), result.BadgePulse)
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		store := newMemStore()
		i := newTestInteractor(store, nil)

		result, err := i.Execute(context.Background(), &Request{
			CartID:    "cart-1",
			ProductID: "p1",
			Title:     "Brass Lighter",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.ItemCount)
	})

	t.Run("writes the full snapshot on every add", func(t *testing.T) {
		store := newMemStore()
		i := newTestInteractor(store, nil)

		for n := 0; n < 2; n++ {
			_, err := i.Execute(context.Background(), &Request{
				CartID:    "cart-1",
				ProductID: "p1",
				Title:     "Brass Lighter",
				Quantity:  1,
			})
			require.NoError(t, err)
		}
		assert.Equal(t, 2, store.saves)

		items, dropped := domain.DecodeSnapshot(store.blobs["cart-1"])
		assert.Zero(t, dropped)
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].Quantity)
	})

	t.Run("empty product id fails without writing", func(t *testing.T) {
		store := newMemStore()
		i := newTestInteractor(store, nil)

		_, err := i.Execute(context.Background(), &Request{CartID: "cart-1"})
		assert.ErrorIs(t, err, domain.ErrEmptyProductID)
		assert.Zero(t, store.saves)
	})

	t.Run("publishes badge pulse and item added signals", func(t *testing.T) {
		store := newMemStore()
		bus := signal.NewBus()
		i := newTestInteractor(store, bus)

		var pulses, adds []signal.Event
		bus.Subscribe(signal.CartBadgePulse, func(ev signal.Event) { pulses = append(pulses, ev) })
		bus.Subscribe(signal.CartItemAdded, func(ev signal.Event) { adds = append(adds, ev) })

		_, err := i.Execute(context.Background(), &Request{
			CartID:    "cart-1",
			ProductID: "p1",
			Title:     "Brass Lighter",
			Quantity:  2,
		})
		require.NoError(t, err)

		require.Len(t, pulses, 1)
		assert.Equal(t, "1", pulses[0].Payload["pulse"])
		require.Len(t, adds, 1)
		assert.Equal(t, "Brass Lighter", adds[0].Payload["title"])
		assert.Equal(t, "cart-1", adds[0].Payload["cart_id"])
	})
}
