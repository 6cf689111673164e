package http

import (
	"encoding/json"
	"net/http"

	"github.com/light-bringer/storefront-service/internal/app/feed"
	"github.com/light-bringer/storefront-service/internal/catalog"
)

// FeedHandler exposes the per-session product feed over HTTP. Every response
// carries the full renderable view so the client never has to merge deltas.
type FeedHandler struct {
	registry *feed.Registry
}

// NewFeedHandler creates a new HTTP feed handler.
func NewFeedHandler(registry *feed.Registry) *FeedHandler {
	return &FeedHandler{registry: registry}
}

// setFiltersRequest narrows the feed by up to two facets. Null or absent
// means the facet is cleared.
type setFiltersRequest struct {
	LighterType *int64 `json:"lighter_type"`
	Category    *int64 `json:"category"`
}

// advanceResponse reports whether the sentinel crossing started a fetch.
type advanceResponse struct {
	Triggered bool        `json:"triggered"`
	View      interface{} `json:"view"`
}

// View handles GET /api/feed. The first view request issues the initial
// page-1 fetch.
func (h *FeedHandler) View(w http.ResponseWriter, r *http.Request) {
	c := h.registry.For(SessionID(r))
	c.EnsureStarted(r.Context())
	writeJSON(w, http.StatusOK, c.View())
}

// SetFilters handles POST /api/feed/filters.
func (h *FeedHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req setFiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	c := h.registry.For(SessionID(r))
	c.SetFilters(r.Context(), catalog.Filters{
		LighterType: req.LighterType,
		Category:    req.Category,
	})
	writeJSON(w, http.StatusOK, c.View())
}

// Advance handles POST /api/feed/advance, the server-side counterpart of the
// end-of-list sentinel entering the viewport. A crossing that arrives while a
// fetch is in flight, after an error, or past the last page is dropped.
func (h *FeedHandler) Advance(w http.ResponseWriter, r *http.Request) {
	c := h.registry.For(SessionID(r))
	triggered := c.SentinelVisible(r.Context())
	writeJSON(w, http.StatusOK, advanceResponse{
		Triggered: triggered,
		View:      c.View(),
	})
}

// Retry handles POST /api/feed/retry.
func (h *FeedHandler) Retry(w http.ResponseWriter, r *http.Request) {
	c := h.registry.For(SessionID(r))
	c.Retry(r.Context())
	writeJSON(w, http.StatusOK, c.View())
}

// Suspend handles POST /api/feed/suspend.
func (h *FeedHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	c := h.registry.For(SessionID(r))
	c.Suspend()
	writeJSON(w, http.StatusOK, c.View())
}

// Resume handles POST /api/feed/resume.
func (h *FeedHandler) Resume(w http.ResponseWriter, r *http.Request) {
	c := h.registry.For(SessionID(r))
	c.Resume()
	writeJSON(w, http.StatusOK, c.View())
}
