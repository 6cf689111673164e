package clear_cart

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/app/cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/signal"
)

// Request identifies the cart to clear.
type Request struct {
	CartID string
}

// Interactor handles the clear cart use case. The intended call site is
// payment confirmation; clearing is never done speculatively.
type Interactor struct {
	registry  *cart.Registry
	store     contracts.SnapshotStore
	committer *committer.Committer
	bus       *signal.Bus
	log       logrus.FieldLogger
}

// NewInteractor creates a new clear cart interactor.
func NewInteractor(
	registry *cart.Registry,
	store contracts.SnapshotStore,
	comm *committer.Committer,
	bus *signal.Bus,
	log logrus.FieldLogger,
) *Interactor {
	return &Interactor{
		registry:  registry,
		store:     store,
		committer: comm,
		bus:       bus,
		log:       log,
	}
}

// Execute empties the cart and writes the empty snapshot.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	var events []domain.DomainEvent

	err := i.registry.WithCart(ctx, req.CartID, func(c *domain.Cart) error {
		c.Clear()
		events = c.DomainEvents()
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
	if err != nil {
		return err
	}

	cart.PublishEvents(i.bus, events)
	return nil
}
