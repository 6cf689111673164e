package begin_checkout

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/app/cart"
	cartdomain "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
)

// Request identifies the cart to check out.
type Request struct {
	CartID string
}

// Result is either a redirect URL or a set of itemized conflicts requiring
// corrective action before checkout can proceed.
type Result struct {
	RedirectURL string
	Conflicts   []contracts.Conflict
}

// Domain errors.
var ErrEmptyCart = errors.New("cart is empty")

// Interactor handles the begin checkout use case.
type Interactor struct {
	registry   *cart.Registry
	gateway    contracts.PaymentGateway
	successURL string
	cancelURL  string
	log        logrus.FieldLogger
}

// NewInteractor creates a new begin checkout interactor.
func NewInteractor(
	registry *cart.Registry,
	gateway contracts.PaymentGateway,
	successURL, cancelURL string,
	log logrus.FieldLogger,
) *Interactor {
	return &Interactor{
		registry:   registry,
		gateway:    gateway,
		successURL: successURL,
		cancelURL:  cancelURL,
		log:        log,
	}
}

// Execute builds the line-item payload from live cart contents and creates a
// payment session. The cart is not cleared here; clearing happens only on
// confirmed payment. Itemized provider rejections come back as conflicts,
// not as an error.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	var lines []contracts.LineItem

	err := i.registry.WithCart(ctx, req.CartID, func(c *cartdomain.Cart) error {
		if c.IsEmpty() {
			return ErrEmptyCart
		}
		for _, li := range c.Items() {
			lines = append(lines, contracts.LineItem{
				ProductID: li.ProductID,
				Quantity:  li.Quantity,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	session, err := i.gateway.CreateSession(ctx, &contracts.SessionRequest{
		Items:      lines,
		SuccessURL: i.successURL,
		CancelURL:  i.cancelURL,
	})
	if err != nil {
		var conflictErr *contracts.ConflictError
		if errors.As(err, &conflictErr) {
			i.log.WithFields(logrus.Fields{
				"cart_id":   req.CartID,
				"conflicts": len(conflictErr.Conflicts),
			}).Info("checkout rejected with itemized conflicts")
			return &Result{Conflicts: conflictErr.Conflicts}, nil
		}
		return nil, err
	}

	return &Result{RedirectURL: session.CheckoutURL}, nil
}
