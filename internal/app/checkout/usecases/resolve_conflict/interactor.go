package resolve_conflict

import (
	"context"
	"errors"

	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/remove_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/update_quantity"
)

// Action is the corrective choice the shopper made for a conflicted item.
type Action string

const (
	// ActionAdjust replaces the line quantity with the provider-reported
	// maximum available.
	ActionAdjust Action = "adjust"

	// ActionRemove drops the line entirely.
	ActionRemove Action = "remove"
)

// Request applies one corrective action to a conflicted cart line.
type Request struct {
	CartID    string
	ProductID string
	Action    Action

	// Quantity is the replacement quantity for ActionAdjust, typically the
	// max_available reported by the checkout conflict.
	Quantity int64
}

// Domain errors.
var ErrUnknownAction = errors.New("unknown conflict resolution action")

// Interactor handles the resolve conflict use case by delegating to the
// cart's own mutation usecases, so the persistence contract stays in one
// place.
type Interactor struct {
	update *update_quantity.Interactor
	remove *remove_item.Interactor
}

// NewInteractor creates a new resolve conflict interactor.
func NewInteractor(update *update_quantity.Interactor, remove *remove_item.Interactor) *Interactor {
	return &Interactor{
		update: update,
		remove: remove,
	}
}

// Execute applies the chosen corrective action.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	switch req.Action {
	case ActionAdjust:
		return i.update.Execute(ctx, &update_quantity.Request{
			CartID:    req.CartID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		})
	case ActionRemove:
		return i.remove.Execute(ctx, &remove_item.Request{
			CartID:    req.CartID,
			ProductID: req.ProductID,
		})
	default:
		return ErrUnknownAction
	}
}
