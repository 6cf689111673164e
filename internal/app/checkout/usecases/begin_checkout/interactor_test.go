package begin_checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
)

type memStore struct {
	blobs map[string][]byte
}

func (s *memStore) Load(_ context.Context, cartID string) ([]byte, error) {
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

type fakeGateway struct {
	lastReq *contracts.SessionRequest
	session *contracts.Session
	err     error
}

func (g *fakeGateway) CreateSession(_ context.Context, req *contracts.SessionRequest) (*contracts.Session, error) {
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	return g.session, nil
}

func setupCart(t *testing.T, items []domain.LineItem) *cart.Registry {
	t.Helper()

	blob, err := domain.EncodeSnapshot(items)
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return cart.NewRegistry(&memStore{blobs: map[string][]byte{"cart-1": blob}}, log)
}

func testLog() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestBeginCheckout(t *testing.T) {
	items := []domain.LineItem{
		{ProductID: "p1", Title: "A", Quantity: 2},
		{ProductID: "p2", Title: "B", Quantity: 1},
	}

	t.Run("builds the payload from live cart contents", func(t *testing.T) {
		registry := setupCart(t, items)
		gateway := &fakeGateway{session: &contracts.Session{CheckoutURL: "https://pay/s/1"}}
		i := NewInteractor(registry, gateway, "http://shop/success", "http://shop/cart", testLog())

		result, err := i.Execute(context.Background(), &Request{CartID: "cart-1"})
		require.NoError(t, err)
		assert.Equal(t, "https://pay/s/1", result.RedirectURL)
		assert.Empty(t, result.Conflicts)

		require.NotNil(t, gateway.lastReq)
		assert.Equal(t, []contracts.LineItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		}, gateway.lastReq.Items)
		assert.Equal(t, "http://shop/success", gateway.lastReq.SuccessURL)
		assert.Equal(t, "http://shop/cart", gateway.lastReq.CancelURL)
	})

	t.Run("empty cart is rejected before calling the provider", func(t *testing.T) {
		registry := setupCart(t, nil)
		gateway := &fakeGateway{}
		i := NewInteractor(registry, gateway, "s", "c", testLog())

		_, err := i.Execute(context.Background(), &Request{CartID: "cart-1"})
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Nil(t, gateway.lastReq)
	})

	t.Run("itemized conflicts come back as a result, not an error", func(t *testing.T) {
		registry := setupCart(t, items)
		gateway := &fakeGateway{err: &contracts.ConflictError{
			Conflicts: []contracts.Conflict{
				{ProductID: "p2", Code: contracts.CodeInsufficientInventory, MaxAvailable: 1},
			},
		}}
		i := NewInteractor(registry, gateway, "s", "c", testLog())

		result, err := i.Execute(context.Background(), &Request{CartID: "cart-1"})
		require.NoError(t, err)
		assert.Empty(t, result.RedirectURL)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, "p2", result.Conflicts[0].ProductID)
	})

	t.Run("transport failures stay errors", func(t *testing.T) {
		registry := setupCart(t, items)
		gateway := &fakeGateway{err: errors.New("provider unreachable")}
		i := NewInteractor(registry, gateway, "s", "c", testLog())

		_, err := i.Execute(context.Background(), &Request{CartID: "cart-1"})
		assert.Error(t, err)
	})

	t.Run("checkout does not clear the cart", func(t *testing.T) {
		registry := setupCart(t, items)
		gateway := &fakeGateway{session: &contracts.Session{CheckoutURL: "https://pay/s/1"}}
		i := NewInteractor(registry, gateway, "s", "c", testLog())

		_, err := i.Execute(context.Background(), &Request{CartID: "cart-1"})
		require.NoError(t, err)

		err = registry.WithCart(context.Background(), "cart-1", func(c *domain.Cart) error {
			assert.Equal(t, int64(3), c.ItemCount())
			return nil
		})
		require.NoError(t, err)
	})
}
