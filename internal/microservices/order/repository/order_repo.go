package repository

import (
	"context"
	"fmt"

	"orders-api/internal/microservices/order/domain/dao"
	"orders-api/internal/microservices/order/domain/dto"
)

type OrderRepositoryInterface interface {
	ListOrders(ctx context.Context) ([]dao.Row, error)
	GetOrder(ctx context.Context, ordNum int64) ([]dao.Row, error)
	AddOrder(ctx context.Context, in dto.OrderInput) error
	ReplaceOrder(ctx context.Context, ordNum int64, in dto.OrderInput) error
	PatchOrder(ctx context.Context, ordNum int64, fields map[string]any) error
	DeleteOrder(ctx context.Context, ordNum int64) error
}

const (
	selectOrders = `SELECT * FROM ` + dao.TableOrders
	selectOrder  = selectOrders + ` WHERE ORD_NUM = ?`
	insertOrder  = `INSERT INTO ` + dao.TableOrders + ` (ORD_NUM, ORD_AMOUNT, ADVANCE_AMOUNT, ORD_DATE, CUST_CODE, AGENT_CODE, ORD_DESCRIPTION) VALUES (?, ?, ?, ?, ?, ?, ?)`
	replaceOrder = `UPDATE ` + dao.TableOrders + ` SET ORD_AMOUNT = ?, ADVANCE_AMOUNT = ?, ORD_DATE = ?, CUST_CODE = ?, AGENT_CODE = ?, ORD_DESCRIPTION = ? WHERE ORD_NUM = ?`
	deleteOrder  = `DELETE FROM ` + dao.TableOrders + ` WHERE ORD_NUM = ?`
)

type OrderRepository struct {
	db Querier
}

func NewOrderRepository(db Querier) OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

func (or *OrderRepository) ListOrders(ctx context.Context) ([]dao.Row, error) {
	rows, err := or.db.Query(ctx, selectOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return rows, nil
}

func (or *OrderRepository) GetOrder(ctx context.Context, ordNum int64) ([]dao.Row, error) {
	rows, err := or.db.Query(ctx, selectOrder, ordNum)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", ordNum, err)
	}
	return rows, nil
}

// AddOrder does not check for an existing ORD_NUM; the primary key does.
func (or *OrderRepository) AddOrder(ctx context.Context, in dto.OrderInput) error {
	_, err := or.db.Exec(ctx, insertOrder,
		in.Number(),
		in.OrdAmount,
		in.AdvanceAmount,
		in.OrdDate,
		in.CustCode,
		in.AgentCode,
		in.OrdDescription,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// ReplaceOrder overwrites every mutable column. Matching zero rows is not an error.
func (or *OrderRepository) ReplaceOrder(ctx context.Context, ordNum int64, in dto.OrderInput) error {
	_, err := or.db.Exec(ctx, replaceOrder,
		in.OrdAmount,
		in.AdvanceAmount,
		in.OrdDate,
		in.CustCode,
		in.AgentCode,
		in.OrdDescription,
		ordNum,
	)
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", ordNum, err)
	}
	return nil
}

func (or *OrderRepository) PatchOrder(ctx context.Context, ordNum int64, fields map[string]any) error {
	set, args, err := BuildPatch(fields)
	if err != nil {
		return fmt.Errorf("failed to patch order %d: %w", ordNum, err)
	}
	args = append(args, ordNum)
	if _, err := or.db.Exec(ctx, "UPDATE "+dao.TableOrders+" SET "+set+" WHERE ORD_NUM = ?", args...); err != nil {
		return fmt.Errorf("failed to patch order %d: %w", ordNum, err)
	}
	return nil
}

func (or *OrderRepository) DeleteOrder(ctx context.Context, ordNum int64) error {
	if _, err := or.db.Exec(ctx, deleteOrder, ordNum); err != nil {
		return fmt.Errorf("failed to delete order %d: %w", ordNum, err)
	}
	return nil
}
