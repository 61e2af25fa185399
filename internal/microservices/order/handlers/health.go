package handlers

import (
	"context"
	"net/http"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// BrokerPinger reports whether the event broker connection is still open.
type BrokerPinger interface {
	Ping() error
}

type HealthHandler struct {
	db     Pinger
	broker BrokerPinger
}

// NewHealthHandler checks db and, when broker is non-nil, the broker too.
func NewHealthHandler(db Pinger, broker BrokerPinger) *HealthHandler {
	return &HealthHandler{db: db, broker: broker}
}

// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
		return
	}
	if h.broker != nil {
		if err := h.broker.Ping(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
