package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/app/cart"
	cartrepo "github.com/light-bringer/storefront-service/internal/app/cart/repo"
	"github.com/light-bringer/storefront-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/clear_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/remove_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/update_quantity"
	"github.com/light-bringer/storefront-service/internal/app/checkout/queries/price_cart"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/begin_checkout"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/confirm_payment"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/resolve_conflict"
	"github.com/light-bringer/storefront-service/internal/app/feed"
	"github.com/light-bringer/storefront-service/internal/catalog"
	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/payments"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/signal"
	httptransport "github.com/light-bringer/storefront-service/internal/transport/http"
)

// catalogFeedSource adapts the catalog client to the feed's page-fetching
// contract.
type catalogFeedSource struct {
	client *catalog.Client
}

func (s *catalogFeedSource) FetchPage(ctx context.Context, page, pageSize int, f catalog.Filters) (*catalog.Page, error) {
	return s.client.ListProducts(ctx, page, pageSize, f)
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Handlers      httptransport.Handlers
	Bus           *signal.Bus
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	bus := signal.NewBus()

	// 3. Create storage and external clients
	snapshotRepo := cartrepo.NewSnapshotRepo(spannerClient)
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)
	paymentsClient := payments.NewClient(cfg.PaymentsBaseURL)

	// 4. Create the per-session registries
	cartRegistry := cart.NewRegistry(snapshotRepo, log)
	feedRegistry := feed.NewRegistry(&catalogFeedSource{client: catalogClient}, clk, log)

	// 5. Create cart use cases
	addItemUseCase := add_item.NewInteractor(cartRegistry, snapshotRepo, comm, bus, log)
	updateQuantityUseCase := update_quantity.NewInteractor(cartRegistry, snapshotRepo, comm, log)
	removeItemUseCase := remove_item.NewInteractor(cartRegistry, snapshotRepo, comm, log)
	clearCartUseCase := clear_cart.NewInteractor(cartRegistry, snapshotRepo, comm, bus, log)

	// 6. Create checkout use cases
	beginCheckoutUseCase := begin_checkout.NewInteractor(
		cartRegistry, paymentsClient, cfg.SuccessURL, cfg.CancelURL, log)
	resolveConflictUseCase := resolve_conflict.NewInteractor(updateQuantityUseCase, removeItemUseCase)
	confirmPaymentUseCase := confirm_payment.NewInteractor(clearCartUseCase, log)

	// 7. Create queries
	getCartQuery := get_cart.NewQuery(cartRegistry)
	priceCartQuery := price_cart.NewQuery(cartRegistry, catalogClient)

	// 8. Create HTTP handlers
	handlers := httptransport.Handlers{
		Cart: httptransport.NewCartHandler(
			addItemUseCase, updateQuantityUseCase, removeItemUseCase, getCartQuery, priceCartQuery),
		Feed:     httptransport.NewFeedHandler(feedRegistry),
		Checkout: httptransport.NewCheckoutHandler(beginCheckoutUseCase, resolveConflictUseCase, confirmPaymentUseCase),
		Catalog:  httptransport.NewCatalogHandler(catalogClient),
		Signals:  httptransport.NewSignalsHandler(bus),
	}

	return &ServiceOptions{
		SpannerClient: spannerClient,
		Handlers:      handlers,
		Bus:           bus,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
