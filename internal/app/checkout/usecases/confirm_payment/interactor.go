package confirm_payment

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/clear_cart"
)

// Request marks a cart's payment as confirmed by the provider redirect.
type Request struct {
	CartID string
}

// Interactor handles the confirm payment use case: the only call site that
// is allowed to clear a cart.
type Interactor struct {
	clear *clear_cart.Interactor
	log   logrus.FieldLogger
}

// NewInteractor creates a new confirm payment interactor.
func NewInteractor(clear *clear_cart.Interactor, log logrus.FieldLogger) *Interactor {
	return &Interactor{
		clear: clear,
		log:   log,
	}
}

// Execute clears the cart after a confirmed successful payment.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	i.log.WithField("cart_id", req.CartID).Info("payment confirmed, clearing cart")
	return i.clear.Execute(ctx, &clear_cart.Request{CartID: req.CartID})
}
