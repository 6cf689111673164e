package remove_item

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/app/cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// Request identifies the line to remove.
type Request struct {
	CartID    string
	ProductID string
}

// Interactor handles the remove item use case.
type Interactor struct {
	registry  *cart.Registry
	store     contracts.SnapshotStore
	committer *committer.Committer
	log       logrus.FieldLogger
}

// NewInteractor creates a new remove item interactor.
func NewInteractor(
	registry *cart.Registry,
	store contracts.SnapshotStore,
	comm *committer.Committer,
	log logrus.FieldLogger,
) *Interactor {
	return &Interactor{
		registry:  registry,
		store:     store,
		committer: comm,
		log:       log,
	}
}

// Execute removes the product's line from the cart. Removing an absent
// product is a no-op; the snapshot is written either way.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	return i.registry.WithCart(ctx, req.CartID, func(c *domain.Cart) error {
		c.RemoveItem(req.ProductID)
		c.ClearEvents()

		blob, err := domain.EncodeSnapshot(c.Items())
		if err != nil {
			i.log.WithError(err).WithField("cart_id", c.ID()).Warn("failed to encode cart snapshot")
			return nil
		}

		plan := committer.NewPlan()
		plan.Add(i.store.SaveMut(c.ID(), blob))

		if err := i.committer.Apply(ctx, plan); err != nil {
			i.log.WithError(err).WithField("cart_id", c.ID()).Warn("failed to persist cart snapshot")
		}
		return nil
	})
}
