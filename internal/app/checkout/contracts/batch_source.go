package contracts

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/catalog"
)

// BatchSource supplies authoritative product data for a set of ids. Cart
// display and checkout pricing always go through this; prices held in the
// cart snapshot are display leftovers and are never trusted.
type BatchSource interface {
	BatchProducts(ctx context.Context, ids []string) ([]catalog.Product, error)
}
