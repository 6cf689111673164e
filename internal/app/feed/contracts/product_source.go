package contracts

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/catalog"
)

// ProductSource supplies pages of the product listing. The production
// implementation is the catalog REST client; tests substitute fakes to
// script latency and failures.
type ProductSource interface {
	// FetchPage retrieves one page of products under the given filters.
	// An out-of-range page returns catalog.ErrInvalidPage.
	FetchPage(ctx context.Context, page, pageSize int, f catalog.Filters) (*catalog.Page, error)
}
