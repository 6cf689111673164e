// Package catalog is a thin client for the product/category REST API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidPage is returned when the server rejects the requested page
// number. This is an expected condition when filters shrink the result set
// below the current page offset; callers treat it as end of results.
var ErrInvalidPage = errors.New("invalid page")

// Filters narrows a product listing by up to two facets. Nil means the facet
// is not applied.
type Filters struct {
	LighterType *int64
	Category    *int64
}

// Client talks to the catalog API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithHTTP creates a Client using the supplied http.Client.
// Used by tests to stub transport behavior.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// ListProducts fetches one page of products with the given filters.
func (c *Client) ListProducts(ctx context.Context, page, pageSize int, f Filters) (*Page, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	if f.LighterType != nil {
		params.Set("lighter_type", strconv.FormatInt(*f.LighterType, 10))
	}
	if f.Category != nil {
		params.Set("category", strconv.FormatInt(*f.Category, 10))
	}

	var wire wirePage
	if err := c.get(ctx, "/products/?"+params.Encode(), &wire); err != nil {
		return nil, err
	}

	results := make([]Product, len(wire.Results))
	for i, w := range wire.Results {
		results[i] = w.toProduct()
	}

	return &Page{
		Results: results,
		Count:   wire.Count,
		HasNext: wire.Next != nil,
	}, nil
}

// ListCategories fetches the category list. The endpoint is paginated but
// small; a single page covers the storefront's needs.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var wire wireCategoryPage
	if err := c.get(ctx, "/categories/", &wire); err != nil {
		return nil, err
	}
	return wire.Results, nil
}

// BatchProducts fetches authoritative product data for the given ids. Used
// to refresh pricing and stock for cart display and checkout; client-held
// prices are never trusted.
func (c *Client) BatchProducts(ctx context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))

	var wire wireBatch
	if err := c.get(ctx, "/products/batch/?"+params.Encode(), &wire); err != nil {
		return nil, err
	}

	products := make([]Product, len(wire.Products))
	for i, w := range wire.Products {
		products[i] = w.toProduct()
	}
	return products, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// DRF reports an out-of-range page as 404 {"detail": "Invalid page."}
		io.Copy(io.Discard, resp.Body)
		return ErrInvalidPage
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("catalog: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: decode response: %w", err)
	}
	return nil
}
