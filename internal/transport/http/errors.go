package http

import (
	"encoding/json"
	"errors"
	"net/http"

	cartdomain "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/begin_checkout"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/resolve_conflict"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// mapDomainError converts domain errors to HTTP status codes.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, cartdomain.ErrEmptyProductID):
		return http.StatusBadRequest, "product id cannot be empty"

	case errors.Is(err, cartdomain.ErrQuantityOutOfRange):
		return http.StatusUnprocessableEntity, "quantity must be between 1 and 999"

	case errors.Is(err, cartdomain.ErrCartNotFound):
		return http.StatusNotFound, "cart not found"

	case errors.Is(err, begin_checkout.ErrEmptyCart):
		return http.StatusBadRequest, "cart is empty"

	case errors.Is(err, resolve_conflict.ErrUnknownAction):
		return http.StatusBadRequest, "unknown conflict resolution action"

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, msg := mapDomainError(err)
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
