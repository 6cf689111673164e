package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	cartdomain "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/begin_checkout"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/resolve_conflict"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"empty product id", cartdomain.ErrEmptyProductID, http.StatusBadRequest},
		{"quantity out of range", cartdomain.ErrQuantityOutOfRange, http.StatusUnprocessableEntity},
		{"cart not found", cartdomain.ErrCartNotFound, http.StatusNotFound},
		{"empty cart checkout", begin_checkout.ErrEmptyCart, http.StatusBadRequest},
		{"unknown resolve action", resolve_conflict.ErrUnknownAction, http.StatusBadRequest},
		{"anything else", errors.New("spanner exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := mapDomainError(tc.err)
			assert.Equal(t, tc.want, status)
			assert.NotEmpty(t, msg)
		})
	}

	t.Run("internal errors do not leak details", func(t *testing.T) {
		_, msg := mapDomainError(errors.New("connection string user:pass@host"))
		assert.Equal(t, "internal server error", msg)
	})
}
