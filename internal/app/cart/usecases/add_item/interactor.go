package add_item

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/app/cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/signal"
)

// Request contains the data needed to add a product to a cart.
type Request struct {
	CartID    string
	ProductID string
	Title     string
	ImageRef  string
	Quantity  int64
}

// Result reports the cart state after the add.
type Result struct {
	ItemCount  int64
	BadgePulse int64
}

// Interactor handles the add item use case.
type Interactor struct {
	registry  *cart.Registry
	store     contracts.SnapshotStore
	committer *committer.Committer
	bus       *signal.Bus
	log       logrus.FieldLogger
}

// NewInteractor creates a new add item interactor.
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

// Execute adds the product to the cart, merging quantity into an existing
// line, then writes the full snapshot before returning.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var (
		result Result
		events []domain.DomainEvent
	)

	err := i.registry.WithCart(ctx, req.CartID, func(c *domain.Cart) error {
		if err := c.AddItem(req.ProductID, req.Title, req.ImageRef, req.Quantity); err != nil {
			return err
		}

		i.persist(ctx, c)

		result.ItemCount = c.ItemCount()
		result.BadgePulse = c.BadgePulse()
		events = c.DomainEvents()
		c.ClearEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	cart.PublishEvents(i.bus, events)
	return &result, nil
}

// persist writes the full snapshot. Storage failures are logged, not
// surfaced: the in-memory cart stays authoritative for the session and the
// next mutation retries the write.
func (i *Interactor) persist(ctx context.Context, c *domain.Cart) {
	blob, err := domain.EncodeSnapshot(c.Items())
	if err != nil {
		i.log.WithError(err).WithField("cart_id", c.ID()).Warn("failed to encode cart snapshot")
		return
	}

	plan := committer.NewPlan()
	plan.Add(i.store.SaveMut(c.ID(), blob))

	if err := i.committer.Apply(ctx, plan); err != nil {
		i.log.WithError(err).WithField("cart_id", c.ID()).Warn("failed to persist cart snapshot")
	}
}
