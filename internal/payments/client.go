// Package payments is a thin client for the external payment provider's
// checkout-session endpoint.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
)

// Client talks to the payment collaborator over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a payments Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithHTTP creates a Client using the supplied http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// wireConflictResponse matches the provider's structured rejection body.
type wireConflictResponse struct {
	Errors []contracts.Conflict `json:"errors"`
}

// CreateSession creates a payment session and returns the redirect URL.
// A 409 with an itemized error body is returned as *contracts.ConflictError
// so callers can prompt corrective action per item.
func (c *Client) CreateSession(ctx context.Context, req *contracts.SessionRequest) (*contracts.Session, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "payments: encode request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/payments/create-checkout-session/", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "payments: create session")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var session contracts.Session
		if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
			return nil, errors.Wrap(err, "payments: decode response")
		}
		return &session, nil

	case resp.StatusCode == http.StatusConflict:
		var wire wireConflictResponse
		if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil || len(wire.Errors) == 0 {
			return nil, errors.Errorf("payments: status %d with unreadable conflict body", resp.StatusCode)
		}
		return nil, &contracts.ConflictError{Conflicts: wire.Errors}

	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("payments: status %d: %s", resp.StatusCode, body)
	}
}
