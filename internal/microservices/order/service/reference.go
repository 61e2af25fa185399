package service

import (
	"context"

	"orders-api/internal/microservices/order/domain/dao"
	"orders-api/internal/microservices/order/repository"
)

// ReferenceServiceInterface serves the read-only agents and customer tables.
type ReferenceServiceInterface interface {
	ListAgents(ctx context.Context) ([]dao.Row, error)
	ListCustomers(ctx context.Context) ([]dao.Row, error)
}

type ReferenceService struct {
	agents    repository.AgentRepositoryInterface
	customers repository.CustomerRepositoryInterface
}

func NewReferenceService(agents repository.AgentRepositoryInterface, customers repository.CustomerRepositoryInterface) ReferenceServiceInterface {
	return &ReferenceService{agents: agents, customers: customers}
}

func (s *ReferenceService) ListAgents(ctx context.Context) ([]dao.Row, error) {
	return s.agents.ListAgents(ctx)
}

func (s *ReferenceService) ListCustomers(ctx context.Context) ([]dao.Row, error) {
	return s.customers.ListCustomers(ctx)
}
