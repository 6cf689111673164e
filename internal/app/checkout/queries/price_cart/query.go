package price_cart

import (
	"context"
	"strconv"

	"github.com/light-bringer/storefront-service/internal/app/cart"
	cartdomain "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
)

// PricedLine joins one cart line with live catalog data. Amounts are in
// integer cents.
type PricedLine struct {
	ProductID      string `json:"product_id"`
	Title          string `json:"title"`
	ImageRef       string `json:"image_ref"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
	InStock        bool   `json:"in_stock"`

	// Available is false when the catalog no longer knows the product.
	// Unavailable lines contribute nothing to the subtotal.
	Available bool `json:"available"`
}

// PricedCart is the cart with fresh catalog pricing applied.
type PricedCart struct {
	Lines         []PricedLine `json:"lines"`
	SubtotalCents int64        `json:"subtotal_cents"`
}

// Query handles the price cart query use case.
type Query struct {
	registry *cart.Registry
	source   contracts.BatchSource
}

// NewQuery creates a new price cart query.
func NewQuery(registry *cart.Registry, source contracts.BatchSource) *Query {
	return &Query{
		registry: registry,
		source:   source,
	}
}

// Execute batch-fetches live product data for every cart line and computes
// the subtotal. An empty cart prices to an empty result without a catalog
// round trip.
func (q *Query) Execute(ctx context.Context, cartID string) (*PricedCart, error) {
	var items []cartdomain.LineItem

	err := q.registry.WithCart(ctx, cartID, func(c *cartdomain.Cart) error {
		items = c.Items()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return &PricedCart{Lines: []PricedLine{}}, nil
	}

	ids := make([]string, len(items))
	for i, li := range items {
		ids[i] = li.ProductID
	}

	products, err := q.source.BatchProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[strconv.FormatInt(p.ID, 10)] = i
	}

	priced := &PricedCart{Lines: make([]PricedLine, 0, len(items))}
	for _, li := range items {
		line := PricedLine{
			ProductID: li.ProductID,
			Title:     li.Title,
			ImageRef:  li.ImageRef,
			Quantity:  li.Quantity,
		}
		if idx, ok := byID[li.ProductID]; ok {
			p := products[idx]
			line.Available = true
			line.InStock = p.IsInStock
			line.UnitPriceCents = p.PriceCents
			line.LineTotalCents = p.PriceCents * li.Quantity
			priced.SubtotalCents += line.LineTotalCents
		}
		priced.Lines = append(priced.Lines, line)
	}

	return priced, nil
}
