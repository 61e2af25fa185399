package handlers

import "net/http"

func Router(h *Handler, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /agents", h.ReferenceHandler.ListAgents)
	mux.HandleFunc("GET /customers", h.ReferenceHandler.ListCustomers)

	mux.HandleFunc("GET /orders", h.OrderHandler.ListOrders)
	mux.HandleFunc("POST /orders", h.OrderHandler.AddOrder)
	mux.HandleFunc("GET /orders/{id}", h.OrderHandler.GetOrder)
	mux.HandleFunc("PUT /orders/{id}", h.OrderHandler.ReplaceOrder)
	mux.HandleFunc("PATCH /orders/{id}", h.OrderHandler.PatchOrder)
	mux.HandleFunc("DELETE /orders/{id}", h.OrderHandler.DeleteOrder)

	mux.HandleFunc("GET /health", h.HealthHandler.Health)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	return mux
}
