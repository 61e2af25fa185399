package repository

import (
	"context"
	"fmt"

	"orders-api/internal/microservices/order/domain/dao"
)

type AgentRepositoryInterface interface {
	ListAgents(ctx context.Context) ([]dao.Row, error)
}

type AgentRepository struct {
	db Querier
}

func NewAgentRepository(db Querier) AgentRepositoryInterface {
	return &AgentRepository{db: db}
}

func (ar *AgentRepository) ListAgents(ctx context.Context) ([]dao.Row, error) {
	rows, err := ar.db.Query(ctx, "SELECT * FROM "+dao.TableAgents)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return rows, nil
}

type CustomerRepositoryInterface interface {
	ListCustomers(ctx context.Context) ([]dao.Row, error)
}

type CustomerRepository struct {
	db Querier
}

func NewCustomerRepository(db Querier) CustomerRepositoryInterface {
	return &CustomerRepository{db: db}
}

func (cr *CustomerRepository) ListCustomers(ctx context.Context) ([]dao.Row, error) {
	rows, err := cr.db.Query(ctx, "SELECT * FROM "+dao.TableCustomers)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return rows, nil
}
