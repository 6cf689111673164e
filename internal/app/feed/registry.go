// Package feed hosts the per-session feed controllers. Feed state is never
// persisted; a controller is built on first touch and refetches from the
// catalog.
package feed

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/storefront-service/internal/app/feed/contracts"
	"github.com/light-bringer/storefront-service/internal/app/feed/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Registry maps session ids to their feed controllers.
type Registry struct {
	source contracts.ProductSource
	clk    clock.Clock
	log    logrus.FieldLogger

	mu          sync.Mutex
	controllers map[string]*domain.Controller
}

// NewRegistry creates an empty Registry.
func NewRegistry(source contracts.ProductSource, clk clock.Clock, log logrus.FieldLogger) *Registry {
	return &Registry{
		source:      source,
		clk:         clk,
		log:         log,
		controllers: make(map[string]*domain.Controller),
	}
}

// For returns the session's controller, creating it on first touch.
func (r *Registry) For(sessionID string) *domain.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.controllers[sessionID]
	if !ok {
		c = domain.NewController(r.source, r.clk, r.log.WithField("session_id", sessionID))
		r.controllers[sessionID] = c
	}
	return c
}

// Drop discards the session's controller.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.controllers, sessionID)
}
