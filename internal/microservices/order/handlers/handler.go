package handlers

import (
	"orders-api/internal/common/logger"
	"orders-api/internal/microservices/order/service"
)

type Handler struct {
	ReferenceHandler *ReferenceHandler
	OrderHandler     *OrderHandler
	HealthHandler    *HealthHandler
}

func New(s *service.Service, db Pinger, broker BrokerPinger, lg *logger.Logger) *Handler {
	return &Handler{
		ReferenceHandler: NewReferenceHandler(s.ReferenceService, lg),
		OrderHandler:     NewOrderHandler(s.OrderService, lg),
		HealthHandler:    NewHealthHandler(db, broker),
	}
}
