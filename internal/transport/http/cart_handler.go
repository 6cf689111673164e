package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/light-bringer/storefront-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/remove_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/update_quantity"
	"github.com/light-bringer/storefront-service/internal/app/checkout/queries/price_cart"
)

// CartHandler exposes the session cart over HTTP. The session id from the
// shop_session-id cookie is the cart id.
type CartHandler struct {
	addItem   *add_item.Interactor
	updateQty *update_quantity.Interactor
	remove    *remove_item.Interactor
	getCart   *get_cart.Query
	priceCart *price_cart.Query
}

// NewCartHandler creates a new HTTP cart handler.
func NewCartHandler(
	addItem *add_item.Interactor,
	updateQty *update_quantity.Interactor,
	remove *remove_item.Interactor,
	getCart *get_cart.Query,
	priceCart *price_cart.Query,
) *CartHandler {
	return &CartHandler{
		addItem:   addItem,
		updateQty: updateQty,
		remove:    remove,
		getCart:   getCart,
		priceCart: priceCart,
	}
}

// addItemRequest is the payload for adding a product to the cart. Title and
// image are display denormalizations captured at add time; quantity defaults
// to 1 when omitted.
type addItemRequest struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	ImageRef  string `json:"image_ref"`
	Quantity  int64  `json:"quantity"`
}

// addItemResponse reports the cart state after the add, including the badge
// pulse counter the client animates on.
type addItemResponse struct {
	ItemCount  int64 `json:"item_count"`
	BadgePulse int64 `json:"badge_pulse"`
}

type updateQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	dto, err := h.getCart.Execute(r.Context(), SessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetPriced handles GET /api/cart/priced, returning cart lines with fresh
// catalog pricing and a subtotal.
func (h *CartHandler) GetPriced(w http.ResponseWriter, r *http.Request) {
	priced, err := h.priceCart.Execute(r.Context(), SessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, priced)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	result, err := h.addItem.Execute(r.Context(), &add_item.Request{
		CartID:    SessionID(r),
		ProductID: req.ProductID,
		Title:     req.Title,
		ImageRef:  req.ImageRef,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, addItemResponse{
		ItemCount:  result.ItemCount,
		BadgePulse: result.BadgePulse,
	})
}

// UpdateQuantity handles PATCH /api/cart/items/{product_id}. A quantity of
// zero or less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["product_id"]

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.updateQty.Execute(r.Context(), &update_quantity.Request{
		CartID:    SessionID(r),
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.Get(w, r)
}

// RemoveItem handles DELETE /api/cart/items/{product_id}. Removing an absent
// product is a no-op, not an error.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	err := h.remove.Execute(r.Context(), &remove_item.Request{
		CartID:    SessionID(r),
		ProductID: mux.Vars(r)["product_id"],
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.Get(w, r)
}
