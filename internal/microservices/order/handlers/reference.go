package handlers

import (
	"net/http"

	"orders-api/internal/common/logger"
	"orders-api/internal/microservices/order/service"
)

type ReferenceHandler struct {
	service service.ReferenceServiceInterface
	lg      *logger.Logger
}

func NewReferenceHandler(s service.ReferenceServiceInterface, lg *logger.Logger) *ReferenceHandler {
	return &ReferenceHandler{service: s, lg: lg}
}

// GET /agents
func (h *ReferenceHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.service.ListAgents(r.Context())
	if err != nil {
		writeFailure(w, r, h.lg, "list_agents_failed", err, "Failed to fetch agents")
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

// GET /customers
func (h *ReferenceHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		writeFailure(w, r, h.lg, "list_customers_failed", err, "Failed to fetch customers")
		return
	}
	writeJSON(w, http.StatusOK, customers)
}
