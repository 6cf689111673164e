package http

import (
	"encoding/json"
	"net/http"

	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/begin_checkout"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/confirm_payment"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/resolve_conflict"
)

// CheckoutHandler exposes the checkout flow over HTTP.
type CheckoutHandler struct {
	begin   *begin_checkout.Interactor
	resolve *resolve_conflict.Interactor
	confirm *confirm_payment.Interactor
}

// NewCheckoutHandler creates a new HTTP checkout handler.
func NewCheckoutHandler(
	begin *begin_checkout.Interactor,
	resolve *resolve_conflict.Interactor,
	confirm *confirm_payment.Interactor,
) *CheckoutHandler {
	return &CheckoutHandler{
		begin:   begin,
		resolve: resolve,
		confirm: confirm,
	}
}

// beginResponse is the success shape: the client navigates to RedirectURL.
type beginResponse struct {
	RedirectURL string `json:"redirect_url"`
}

// conflictResponse is the 409 shape: the client renders one corrective
// prompt per conflict.
type conflictResponse struct {
	Conflicts []contracts.Conflict `json:"conflicts"`
}

type resolveRequest struct {
	ProductID string `json:"product_id"`
	Action    string `json:"action"`
	Quantity  int64  `json:"quantity"`
}

// Begin handles POST /api/checkout. Inventory conflicts come back as a 409
// with itemized corrective options instead of a bare error.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	result, err := h.begin.Execute(r.Context(), &begin_checkout.Request{
		CartID: SessionID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if len(result.Conflicts) > 0 {
		writeJSON(w, http.StatusConflict, conflictResponse{Conflicts: result.Conflicts})
		return
	}

	writeJSON(w, http.StatusOK, beginResponse{RedirectURL: result.RedirectURL})
}

// Resolve handles POST /api/checkout/resolve, applying one corrective action
// ("adjust" or "remove") to a conflicted cart line. The client re-attempts
// checkout afterwards.
func (h *CheckoutHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.resolve.Execute(r.Context(), &resolve_conflict.Request{
		CartID:    SessionID(r),
		ProductID: req.ProductID,
		Action:    resolve_conflict.Action(req.Action),
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Confirm handles POST /api/checkout/confirm, called from the payment
// provider's success redirect. This is the only route that clears a cart.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	err := h.confirm.Execute(r.Context(), &confirm_payment.Request{
		CartID: SessionID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
