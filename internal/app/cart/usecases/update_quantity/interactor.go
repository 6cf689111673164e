package update_quantity

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/app/cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// Request carries the replacement quantity for a line.
type Request struct {
	CartID    string
	ProductID string
	Quantity  int64
}

// Interactor handles the update quantity use case.
type Interactor struct {
	registry  *cart.Registry
	store     contracts.SnapshotStore
	committer *committer.Committer
	log       logrus.FieldLogger
}

// NewInteractor creates a new update quantity interactor.
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

// Execute replaces the stored quantity for the product. A quantity of zero
// or less removes the line; an out-of-range quantity is rejected with
// domain.ErrQuantityOutOfRange and the line is left unchanged.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	return i.registry.WithCart(ctx, req.CartID, func(c *domain.Cart) error {
		if err := c.UpdateQuantity(req.ProductID, req.Quantity); err != nil {
			return err
		}
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
