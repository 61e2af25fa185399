package service

import (
	"orders-api/internal/common/logger"
	"orders-api/internal/microservices/order/repository"
)

type Service struct {
	ReferenceService ReferenceServiceInterface
	OrderService     OrderServiceInterface
}

func New(repo repository.Repository, pub EventPublisher, lg *logger.Logger) *Service {
	return &Service{
		ReferenceService: NewReferenceService(repo.AgentRepo, repo.CustomerRepo),
		OrderService:     NewOrderService(repo.OrderRepo, pub, lg),
	}
}
