package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"orders-api/internal/common/logger"
	"orders-api/internal/microservices/order/domain/dto"
	"orders-api/internal/microservices/order/service"
)

const (
	msgOrderNotFound = "Order not found"
	msgOrderAdded    = "Order added successfully"
	msgOrderUpdated  = "Order updated successfully"
	msgOrderPatched  = "Order updated partially"
	msgOrderDeleted  = "Order deleted successfully"

	errFetchOrders = "Failed to fetch orders"
	errFetchOrder  = "Failed to fetch order"
	errAddOrder    = "Failed to add order"
	errUpdateOrder = "Failed to update order"
	errDeleteOrder = "Failed to delete order"
)

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, lg *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, lg: lg}
}

// GET /orders
func (oh *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := oh.service.ListOrders(r.Context())
	if err != nil {
		writeFailure(w, r, oh.lg, "list_orders_failed", err, errFetchOrders)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GET /orders/{id}
func (oh *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseOrderNumber(r.PathValue("id"))
	if err != nil {
		// no order can carry a non-integer number
		writeMessage(w, http.StatusNotFound, msgOrderNotFound)
		return
	}

	order, err := oh.service.GetOrder(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		writeMessage(w, http.StatusNotFound, msgOrderNotFound)
	case err != nil:
		writeFailure(w, r, oh.lg, "get_order_failed", err, errFetchOrder)
	default:
		writeJSON(w, http.StatusOK, order)
	}
}

// POST /orders
func (oh *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, r, oh.lg, "add_order_failed", fmt.Errorf("decode body: %w", err), errAddOrder)
		return
	}

	if err := oh.service.AddOrder(r.Context(), req); err != nil {
		writeFailure(w, r, oh.lg, "add_order_failed", err, errAddOrder)
		return
	}
	writeMessage(w, http.StatusCreated, msgOrderAdded)
}

// PUT /orders/{id}
func (oh *OrderHandler) ReplaceOrder(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseOrderNumber(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, oh.lg, "update_order_failed", err, errUpdateOrder)
		return
	}

	var req dto.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, r, oh.lg, "update_order_failed", fmt.Errorf("decode body: %w", err), errUpdateOrder)
		return
	}

	if err := oh.service.ReplaceOrder(r.Context(), id, req); err != nil {
		writeFailure(w, r, oh.lg, "update_order_failed", err, errUpdateOrder)
		return
	}
	writeMessage(w, http.StatusOK, msgOrderUpdated)
}

// PATCH /orders/{id}
func (oh *OrderHandler) PatchOrder(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseOrderNumber(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, oh.lg, "patch_order_failed", err, errUpdateOrder)
		return
	}

	var fields map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		writeFailure(w, r, oh.lg, "patch_order_failed", fmt.Errorf("decode body: %w", err), errUpdateOrder)
		return
	}

	if err := oh.service.PatchOrder(r.Context(), id, fields); err != nil {
		writeFailure(w, r, oh.lg, "patch_order_failed", err, errUpdateOrder)
		return
	}
	writeMessage(w, http.StatusOK, msgOrderPatched)
}

// DELETE /orders/{id}
func (oh *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseOrderNumber(r.PathValue("id"))
	if err != nil {
		writeFailure(w, r, oh.lg, "delete_order_failed", err, errDeleteOrder)
		return
	}

	if err := oh.service.DeleteOrder(r.Context(), id); err != nil {
		writeFailure(w, r, oh.lg, "delete_order_failed", err, errDeleteOrder)
		return
	}
	writeMessage(w, http.StatusOK, msgOrderDeleted)
}
