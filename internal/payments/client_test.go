package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
)

func sessionRequest() *contracts.SessionRequest {
	return &contracts.SessionRequest{
		Items: []contracts.LineItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		SuccessURL: "http://shop/success",
		CancelURL:  "http://shop/cart",
	}
}

func TestClient_CreateSession(t *testing.T) {
	t.Run("returns the redirect url on success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/payments/create-checkout-session/", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var req contracts.SessionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Len(t, req.Items, 2)

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"checkout_url": "https://pay.example/session/abc"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		session, err := c.CreateSession(context.Background(), sessionRequest())
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example/session/abc", session.CheckoutURL)
	})

	t.Run("409 with itemized body becomes a ConflictError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"errors": [
				{"product_id": "p2", "code": "insufficient_inventory", "max_available": 2, "message": "Only 2 left"},
				{"product_id": "p3", "code": "product_unavailable", "message": "No longer sold"}
			]}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		_, err := c.CreateSession(context.Background(), sessionRequest())
		require.Error(t, err)

		var conflictErr *contracts.ConflictError
		require.True(t, errors.As(err, &conflictErr))
		require.Len(t, conflictErr.Conflicts, 2)
		assert.Equal(t, contracts.CodeInsufficientInventory, conflictErr.Conflicts[0].Code)
		assert.Equal(t, int64(2), conflictErr.Conflicts[0].MaxAvailable)
		assert.Equal(t, contracts.CodeProductUnavailable, conflictErr.Conflicts[1].Code)
	})

	t.Run("409 with unreadable body is a plain error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`oops`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		_, err := c.CreateSession(context.Background(), sessionRequest())
		require.Error(t, err)

		var conflictErr *contracts.ConflictError
		assert.False(t, errors.As(err, &conflictErr))
	})

	t.Run("other statuses surface as errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		_, err := c.CreateSession(context.Background(), sessionRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
	})
}
