// Package http wires the storefront's HTTP API: the session cart, the
// paginated product feed and the checkout flow. Every route sits behind the
// session cookie middleware, so handlers can assume a session id.
package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handlers groups the route handlers the router mounts.
type Handlers struct {
	Cart     *CartHandler
	Feed     *FeedHandler
	Checkout *CheckoutHandler
	Catalog  *CatalogHandler
	Signals  *SignalsHandler
}

// NewRouter builds the full route table with session and logging middleware
// applied.
func NewRouter(h Handlers, log logrus.FieldLogger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/feed", h.Feed.View).Methods(http.MethodGet)
	r.HandleFunc("/api/feed/filters", h.Feed.SetFilters).Methods(http.MethodPost)
	r.HandleFunc("/api/feed/advance", h.Feed.Advance).Methods(http.MethodPost)
	r.HandleFunc("/api/feed/retry", h.Feed.Retry).Methods(http.MethodPost)
	r.HandleFunc("/api/feed/suspend", h.Feed.Suspend).Methods(http.MethodPost)
	r.HandleFunc("/api/feed/resume", h.Feed.Resume).Methods(http.MethodPost)

	r.HandleFunc("/api/cart", h.Cart.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/cart/priced", h.Cart.GetPriced).Methods(http.MethodGet)
	r.HandleFunc("/api/cart/items", h.Cart.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/items/{product_id}", h.Cart.UpdateQuantity).Methods(http.MethodPatch)
	r.HandleFunc("/api/cart/items/{product_id}", h.Cart.RemoveItem).Methods(http.MethodDelete)

	r.HandleFunc("/api/checkout", h.Checkout.Begin).Methods(http.MethodPost)
	r.HandleFunc("/api/checkout/resolve", h.Checkout.Resolve).Methods(http.MethodPost)
	r.HandleFunc("/api/checkout/confirm", h.Checkout.Confirm).Methods(http.MethodPost)

	r.HandleFunc("/api/categories", h.Catalog.ListCategories).Methods(http.MethodGet)
	r.HandleFunc("/api/signals", h.Signals.Poll).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "ok")
	}).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = LogRequests(log, handler)
	handler = EnsureSessionID(handler)
	return handler
}
