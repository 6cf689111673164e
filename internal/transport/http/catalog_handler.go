package http

import (
	"net/http"

	"github.com/light-bringer/storefront-service/internal/catalog"
)

// CatalogHandler proxies the small read-only catalog endpoints the
// storefront needs beyond the feed itself.
type CatalogHandler struct {
	client *catalog.Client
}

// NewCatalogHandler creates a new HTTP catalog handler.
func NewCatalogHandler(client *catalog.Client) *CatalogHandler {
	return &CatalogHandler{client: client}
}

// ListCategories handles GET /api/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.client.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
