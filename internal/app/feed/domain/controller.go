package domain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/app/feed/contracts"
	"github.com/light-bringer/storefront-service/internal/catalog"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

const (
	// DefaultPageSize is the number of products fetched per page.
	DefaultPageSize = 24

	// GridColumns is the storefront grid width; skeleton counts are padded
	// to fill the last partially rendered row.
	GridColumns = 3

	// SkeletonMinDisplay is the minimum time the loading presentation stays
	// visible once a fetch starts. Fast responses are stored immediately but
	// the visual swap is held until this much time has passed, which avoids
	// flicker on fast networks.
	SkeletonMinDisplay = 800 * time.Millisecond
)

// View is a renderable snapshot of the controller state.
type View struct {
	Items          []catalog.Product `json:"items"`
	TotalCount     int64             `json:"total_count"`
	Page           int               `json:"page"`
	HasMore        bool              `json:"has_more"`
	LoadingInitial bool              `json:"loading_initial"`
	LoadingMore    bool              `json:"loading_more"`
	ShowSkeletons  bool              `json:"show_skeletons"`
	SkeletonCount  int               `json:"skeleton_count"`
	Error          string            `json:"error,omitempty"`
	Suspended      bool              `json:"suspended"`
	Initialized    bool              `json:"initialized"`
}

// Controller drives one session's paginated product feed. At most one fetch
// may be in flight at a time, enforced with an in-flight guard rather than a
// queue: a trigger arriving while a fetch is outstanding is dropped. The one
// exception is a filter change, whose page-1 fetch always starts and
// supersedes whatever is in flight; the superseded response is discarded on
// arrival, never merged.
type Controller struct {
	source contracts.ProductSource
	clk    clock.Clock
	log    logrus.FieldLogger

	pageSize    int
	minSkeleton time.Duration

	mu            sync.Mutex
	items         []catalog.Product
	totalCount    int64
	page          int
	hasMore       bool
	filters       catalog.Filters
	initialized   bool
	suspended     bool
	fetchErr      string
	loadingInit   bool
	loadingMore   bool
	skeletonUntil time.Time

	// fetchSeq numbers started fetches; activeSeq is the only fetch whose
	// result may be applied. Zero means nothing is in flight.
	fetchSeq  int64
	activeSeq int64
}

// NewController creates an idle Controller. No fetch is issued until
// EnsureStarted or SetFilters is called.
func NewController(source contracts.ProductSource, clk clock.Clock, log logrus.FieldLogger) *Controller {
	return &Controller{
		source:      source,
		clk:         clk,
		log:         log,
		pageSize:    DefaultPageSize,
		minSkeleton: SkeletonMinDisplay,
		hasMore:     true,
		page:        1,
	}
}

// EnsureStarted issues the initial page-1 fetch if the controller has never
// loaded and nothing is in flight. Safe to call on every view request.
func (c *Controller) EnsureStarted(ctx context.Context) {
	c.mu.Lock()
	if c.initialized || c.activeSeq != 0 || c.fetchErr != "" {
		c.mu.Unlock()
		return
	}
	c.loadingInit = true
	seq := c.beginFetchLocked()
	f := c.filters
	c.mu.Unlock()

	c.fetch(ctx, 1, f, seq)
}

// SetFilters replaces the active facet filters, synchronously resets the
// feed (empty items, page 1, hasMore) and fetches page 1 under the new
// filters. The reset fetch is allowed to start even while an older fetch is
// in flight; the older response will fail its currency check and be
// discarded. Re-applying the identical filters to an initialized feed is a
// no-op.
func (c *Controller) SetFilters(ctx context.Context, f catalog.Filters) {
	c.mu.Lock()
	if c.initialized && filtersEqual(c.filters, f) {
		c.mu.Unlock()
		return
	}

	c.filters = f
	c.items = nil
	c.totalCount = 0
	c.page = 1
	c.hasMore = true
	c.fetchErr = ""
	c.loadingInit = true
	c.loadingMore = false
	seq := c.beginFetchLocked()
	c.mu.Unlock()

	c.fetch(ctx, 1, f, seq)
}

// SentinelVisible reports that the end-of-list sentinel entered the trigger
// margin. The next page is fetched only when the feed has more results,
// nothing is in flight, there is no error, at least one item is already
// loaded, the initial load completed and the trigger is not suspended.
// It returns true when a fetch was started.
func (c *Controller) SentinelVisible(ctx context.Context) bool {
	c.mu.Lock()
	canTrigger := c.hasMore &&
		c.activeSeq == 0 &&
		c.fetchErr == "" &&
		len(c.items) > 0 &&
		c.initialized &&
		!c.suspended
	if !canTrigger {
		c.mu.Unlock()
		return false
	}

	c.page++
	target := c.page
	c.loadingMore = true
	seq := c.beginFetchLocked()
	f := c.filters
	c.mu.Unlock()

	c.fetch(ctx, target, f, seq)
	return true
}

// Retry recovers from a failed fetch with a full reload of page 1 under the
// current filters.
func (c *Controller) Retry(ctx context.Context) {
	c.mu.Lock()
	c.items = nil
	c.totalCount = 0
	c.page = 1
	c.hasMore = true
	c.fetchErr = ""
	c.loadingInit = true
	c.loadingMore = false
	seq := c.beginFetchLocked()
	f := c.filters
	c.mu.Unlock()

	c.fetch(ctx, 1, f, seq)
}

// Suspend pauses the sentinel trigger, e.g. while navigation logic scrolls
// the page programmatically. Idempotent: repeated calls are harmless.
func (c *Controller) Suspend() {
	c.mu.Lock()
	c.suspended = true
	c.mu.Unlock()
}

// Resume re-enables the sentinel trigger. Idempotent.
func (c *Controller) Resume() {
	c.mu.Lock()
	c.suspended = false
	c.mu.Unlock()
}

// Filters returns the active facet filters.
func (c *Controller) Filters() catalog.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// View returns a renderable snapshot. Data is stored the moment a response
// arrives; ShowSkeletons stays true until the minimum display duration has
// elapsed since the fetch started, so the visual swap never flickers.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clk.Now()
	showSkeletons := c.activeSeq != 0 || now.Before(c.skeletonUntil)

	v := View{
		Items:          append([]catalog.Product(nil), c.items...),
		TotalCount:     c.totalCount,
		Page:           c.page,
		HasMore:        c.hasMore,
		LoadingInitial: c.loadingInit,
		LoadingMore:    c.loadingMore,
		ShowSkeletons:  showSkeletons,
		Error:          c.fetchErr,
		Suspended:      c.suspended,
		Initialized:    c.initialized,
	}
	if showSkeletons {
		v.SkeletonCount = c.skeletonCountLocked()
	}
	return v
}

// beginFetchLocked marks a new fetch as the active one and arms the skeleton
// hold window. Callers must hold c.mu.
func (c *Controller) beginFetchLocked() int64 {
	c.fetchSeq++
	c.activeSeq = c.fetchSeq
	c.skeletonUntil = c.clk.Now().Add(c.minSkeleton)
	return c.fetchSeq
}

// skeletonCountLocked computes how many placeholder cards to render: enough
// to fill the remainder of the current grid row, plus one full page, so the
// grid does not reflow mid-load.
func (c *Controller) skeletonCountLocked() int {
	if !c.initialized || len(c.items) == 0 {
		return c.pageSize
	}
	fill := (GridColumns - len(c.items)%GridColumns) % GridColumns
	return fill + c.pageSize
}

// fetch performs the network request outside the lock, then applies the
// result only if this fetch is still the active one. A fetch superseded by a
// filter change finds a different activeSeq and discards its response.
func (c *Controller) fetch(ctx context.Context, page int, f catalog.Filters, seq int64) {
	resp, err := c.source.FetchPage(ctx, page, c.pageSize, f)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.activeSeq {
		c.log.WithFields(logrus.Fields{
			"page": page,
			"seq":  seq,
		}).Debug("discarding stale feed response")
		return
	}

	c.activeSeq = 0
	c.loadingInit = false
	c.loadingMore = false

	if err != nil {
		if errors.Is(err, catalog.ErrInvalidPage) {
			// Filters shrank the result set below our offset: normal end of
			// results, not a user-facing error.
			c.hasMore = false
			c.skeletonUntil = time.Time{}
			return
		}
		c.fetchErr = err.Error()
		c.skeletonUntil = time.Time{}
		c.log.WithError(err).WithField("page", page).Warn("feed fetch failed")
		return
	}

	if page == 1 {
		c.items = resp.Results
		c.initialized = true
	} else {
		c.items = append(c.items, resp.Results...)
	}
	c.page = page
	c.totalCount = resp.Count
	c.hasMore = resp.HasNext
	c.fetchErr = ""
}

func filtersEqual(a, b catalog.Filters) bool {
	return int64PtrEqual(a.LighterType, b.LighterType) &&
		int64PtrEqual(a.Category, b.Category)
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
