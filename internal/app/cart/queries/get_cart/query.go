package get_cart

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

// LineDTO is the display shape of one cart line.
type LineDTO struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	ImageRef  string `json:"image_ref"`
	Quantity  int64  `json:"quantity"`
}

// CartDTO is the display shape of the whole cart. Subtotal is deliberately
// absent: prices are fetched fresh from the catalog at display time.
type CartDTO struct {
	Items      []LineDTO `json:"items"`
	ItemCount  int64     `json:"item_count"`
	BadgePulse int64     `json:"badge_pulse"`
}

// Query handles the get cart query use case.
type Query struct {
	registry *cart.Registry
}

// NewQuery creates a new get cart query.
func NewQuery(registry *cart.Registry) *Query {
	return &Query{registry: registry}
}

// Execute returns the cart contents in insertion order.
func (q *Query) Execute(ctx context.Context, cartID string) (*CartDTO, error) {
	var dto *CartDTO

	err := q.registry.WithCart(ctx, cartID, func(c *domain.Cart) error {
		items := c.Items()
		lines := make([]LineDTO, len(items))
		for i, li := range items {
			lines[i] = LineDTO{
				ProductID: li.ProductID,
				Title:     li.Title,
				ImageRef:  li.ImageRef,
				Quantity:  li.Quantity,
			}
		}
		dto = &CartDTO{
			Items:      lines,
			ItemCount:  c.ItemCount(),
			BadgePulse: c.BadgePulse(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dto, nil
}
