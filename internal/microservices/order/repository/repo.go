package repository

import "context"

// Querier runs one parameterized statement on a pooled connection.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) ([]map[string]any, error)
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

type Repository struct {
	AgentRepo    AgentRepositoryInterface
	CustomerRepo CustomerRepositoryInterface
	OrderRepo    OrderRepositoryInterface
}

func New(db Querier) *Repository {
	return &Repository{
		AgentRepo:    NewAgentRepository(db),
		CustomerRepo: NewCustomerRepository(db),
		OrderRepo:    NewOrderRepository(db),
	}
}
