package service

import (
	"context"
	"encoding/json"
	"errors"

	"orders-api/internal/common/logger"
	"orders-api/internal/microservices/order/domain/dao"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrDeliveriesClosed is returned when the broker drops the consumer.
var ErrDeliveriesClosed = errors.New("order event deliveries closed")

type Subscriber interface {
	Subscribe(exchange, queue, key string) (<-chan amqp.Delivery, error)
}

type NotificatorService struct {
	src      Subscriber
	exchange string
	queue    string
	lg       *logger.Logger
}

func NewNotificatorService(src Subscriber, exchange, queue string, lg *logger.Logger) *NotificatorService {
	return &NotificatorService{src: src, exchange: exchange, queue: queue, lg: lg}
}

// Notify logs every order event until ctx is cancelled.
func (ns *NotificatorService) Notify(ctx context.Context) error {
	msgs, err := ns.src.Subscribe(ns.exchange, ns.queue, "order.#")
	if err != nil {
		return err
	}
	ns.lg.Info("subscribed", map[string]any{"exchange": ns.exchange, "queue": ns.queue})

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return ErrDeliveriesClosed
			}
			ns.handle(msg)
		}
	}
}

func (ns *NotificatorService) handle(msg amqp.Delivery) {
	var ev dao.OrderEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		ns.lg.Warn("order_event_undecodable", err, map[string]any{"routing_key": msg.RoutingKey})
		return
	}

	fields := map[string]any{
		"event":       string(ev.Type),
		"occurred_at": ev.OccurredAt,
	}
	if ev.OrderNumber != nil {
		fields["order_number"] = *ev.OrderNumber
	}
	ns.lg.Info("order_event_received", fields)
}
