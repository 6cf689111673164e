// Package cart hosts the live cart aggregates for active sessions. Each slot
// is read from durable storage once, on first touch, and every mutation
// writes the full snapshot back through the store.
package cart

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

type handle struct {
	mu     sync.Mutex
	loaded bool
	cart   *domain.Cart
}

// Registry caches cart aggregates keyed by cart id and serializes access to
// each one. Two tabs sharing a session cookie therefore share one aggregate;
// the last snapshot write wins at the storage level.
type Registry struct {
	store contracts.SnapshotStore
	log   logrus.FieldLogger

	mu      sync.Mutex
	handles map[string]*handle
}

// NewRegistry creates an empty Registry backed by the given store.
func NewRegistry(store contracts.SnapshotStore, log logrus.FieldLogger) *Registry {
	return &Registry{
		store:   store,
		log:     log,
		handles: make(map[string]*handle),
	}
}

// WithCart runs fn with exclusive access to the cart aggregate for cartID,
// loading and validating the stored snapshot on first touch. Snapshot
// corruption is recovered here: malformed entries are dropped with a log
// line, and a failed load degrades to an empty cart rather than an error.
func (r *Registry) WithCart(ctx context.Context, cartID string, fn func(*domain.Cart) error) error {
	h := r.handleFor(cartID)

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.loaded {
		h.cart = r.loadCart(ctx, cartID)
		h.loaded = true
	}

	return fn(h.cart)
}

// Evict drops the cached aggregate for cartID. The next touch reloads from
// storage. Used by the cleanup tool path and tests.
func (r *Registry) Evict(cartID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, cartID)
}

func (r *Registry) handleFor(cartID string) *handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handles[cartID]
	if !ok {
		h = &handle{}
		r.handles[cartID] = h
	}
	return h
}

func (r *Registry) loadCart(ctx context.Context, cartID string) *domain.Cart {
	blob, err := r.store.Load(ctx, cartID)
	if err != nil {
		r.log.WithError(err).WithField("cart_id", cartID).
			Warn("failed to load cart slot, starting empty")
		return domain.NewCart(cartID)
	}

	items, dropped := domain.DecodeSnapshot(blob)
	if dropped > 0 {
		r.log.WithFields(logrus.Fields{
			"cart_id": cartID,
			"dropped": dropped,
		}).Warn("dropped malformed cart snapshot entries")
	}

	return domain.ReconstructCart(cartID, items)
}
