package service

import (
	"context"
	"errors"
	"time"

	"orders-api/internal/common/logger"
	"orders-api/internal/microservices/order/domain/dao"
	"orders-api/internal/microservices/order/domain/dto"
	"orders-api/internal/microservices/order/repository"
)

var ErrOrderNotFound = errors.New("order not found")

const publishTimeout = 5 * time.Second

type OrderServiceInterface interface {
	ListOrders(ctx context.Context) ([]dao.Row, error)
	GetOrder(ctx context.Context, ordNum int64) ([]dao.Row, error)
	AddOrder(ctx context.Context, in dto.OrderInput) error
	ReplaceOrder(ctx context.Context, ordNum int64, in dto.OrderInput) error
	PatchOrder(ctx context.Context, ordNum int64, fields map[string]any) error
	DeleteOrder(ctx context.Context, ordNum int64) error
}

type OrderService struct {
	db  repository.OrderRepositoryInterface
	pub EventPublisher
	lg  *logger.Logger
	now func() time.Time
}

func NewOrderService(db repository.OrderRepositoryInterface, pub EventPublisher, lg *logger.Logger) OrderServiceInterface {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &OrderService{db: db, pub: pub, lg: lg, now: func() time.Time { return time.Now().UTC() }}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]dao.Row, error) {
	return s.db.ListOrders(ctx)
}

// GetOrder returns every row with the given ORD_NUM, or ErrOrderNotFound when there are none.
func (s *OrderService) GetOrder(ctx context.Context, ordNum int64) ([]dao.Row, error) {
	rows, err := s.db.GetOrder(ctx, ordNum)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrOrderNotFound
	}
	return rows, nil
}

func (s *OrderService) AddOrder(ctx context.Context, in dto.OrderInput) error {
	if err := s.db.AddOrder(ctx, in); err != nil {
		return err
	}
	s.announce(ctx, dao.OrderCreated, in.Number(), in)
	return nil
}

func (s *OrderService) ReplaceOrder(ctx context.Context, ordNum int64, in dto.OrderInput) error {
	if err := s.db.ReplaceOrder(ctx, ordNum, in); err != nil {
		return err
	}
	s.announce(ctx, dao.OrderUpdated, &ordNum, in)
	return nil
}

func (s *OrderService) PatchOrder(ctx context.Context, ordNum int64, fields map[string]any) error {
	if err := s.db.PatchOrder(ctx, ordNum, fields); err != nil {
		return err
	}
	s.announce(ctx, dao.OrderPatched, &ordNum, fields)
	return nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, ordNum int64) error {
	if err := s.db.DeleteOrder(ctx, ordNum); err != nil {
		return err
	}
	s.announce(ctx, dao.OrderDeleted, &ordNum, nil)
	return nil
}

// announce is best effort: the statement already succeeded, so a broker
// failure is logged and never reported to the caller.
func (s *OrderService) announce(ctx context.Context, typ dao.OrderEventType, ordNum *int64, payload any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := dao.OrderEvent{Type: typ, OrderNumber: ordNum, Payload: payload, OccurredAt: s.now()}
	if err := s.pub.PublishOrderEvent(ctx, ev); err != nil {
		s.lg.Error("order_event_publish_failed", err, map[string]any{"event": string(typ)})
	}
}
