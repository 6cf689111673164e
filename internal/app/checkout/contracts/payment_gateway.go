package contracts

import (
	"context"
	"fmt"
	"strings"
)

// LineItem is one entry of the checkout payload sent to the payment
// collaborator. Quantities are read live from the cart at checkout time.
type LineItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// SessionRequest is the payload for creating a payment session.
type SessionRequest struct {
	Items      []LineItem `json:"items"`
	SuccessURL string     `json:"success_url"`
	CancelURL  string     `json:"cancel_url"`
}

// Session carries the redirect target of a created payment session.
type Session struct {
	CheckoutURL string `json:"checkout_url"`
}

// Conflict codes reported by the payment collaborator.
const (
	CodeInsufficientInventory = "insufficient_inventory"
	CodeProductUnavailable    = "product_unavailable"
)

// Conflict is one itemized checkout rejection, mapped to an actionable
// prompt: the UI offers "adjust to MaxAvailable" or "remove item".
type Conflict struct {
	ProductID    string `json:"product_id"`
	Code         string `json:"code"`
	MaxAvailable int64  `json:"max_available"`
	Message      string `json:"message"`
}

// ConflictError aggregates all per-item conflicts from one checkout attempt.
type ConflictError struct {
	Conflicts []Conflict
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	ids := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		ids[i] = c.ProductID
	}
	return fmt.Sprintf("checkout rejected for products: %s", strings.Join(ids, ", "))
}

// PaymentGateway creates payment sessions with the external provider.
// Payment processing itself is entirely out of scope; the storefront only
// relays the redirect URL and surfaces structured conflicts.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req *SessionRequest) (*Session, error)
}
