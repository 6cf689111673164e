package http

import (
	"net/http"
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/signal"
)

// pollTimeout bounds how long a signals request stays open with nothing to
// report.
const pollTimeout = 25 * time.Second

// SignalsHandler exposes UI attention signals (badge pulses, item-added
// toasts) as a long-poll endpoint. The client re-issues the request after
// each response.
type SignalsHandler struct {
	bus *signal.Bus
}

// NewSignalsHandler creates a new HTTP signals handler.
func NewSignalsHandler(bus *signal.Bus) *SignalsHandler {
	return &SignalsHandler{bus: bus}
}

type signalDTO struct {
	Name    string            `json:"name"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Poll handles GET /api/signals. It returns the next batch of cart signals
// for this session, or an empty list when the poll window elapses.
func (h *SignalsHandler) Poll(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionID(r)

	events := make(chan signal.Event, 16)
	forward := func(ev signal.Event) {
		if ev.Payload["cart_id"] != sessionID {
			return
		}
		select {
		case events <- ev:
		default:
		}
	}

	unsubs := []func(){
		h.bus.Subscribe(signal.CartBadgePulse, forward),
		h.bus.Subscribe(signal.CartItemAdded, forward),
		h.bus.Subscribe(signal.CartCleared, forward),
	}
	defer func() {
		for _, u := range unsubs {
			u()
		}
	}()

	timer := time.NewTimer(pollTimeout)
	defer timer.Stop()

	var out []signalDTO
	select {
	case ev := <-events:
		out = append(out, signalDTO{Name: ev.Name, Payload: ev.Payload})
		// Drain whatever arrived in the same burst.
		for {
			select {
			case ev := <-events:
				out = append(out, signalDTO{Name: ev.Name, Payload: ev.Payload})
			default:
				writeJSON(w, http.StatusOK, out)
				return
			}
		}
	case <-timer.C:
		writeJSON(w, http.StatusOK, []signalDTO{})
	case <-r.Context().Done():
		writeJSON(w, http.StatusOK, []signalDTO{})
	}
}
