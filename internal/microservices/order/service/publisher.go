package service

import (
	"context"
	"encoding/json"
	"fmt"

	"orders-api/internal/connections/rabbitmq"
	"orders-api/internal/microservices/order/domain/dao"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher announces order mutations to downstream consumers.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev dao.OrderEvent) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, dao.OrderEvent) error { return nil }

type RabbitPublisher struct {
	client   *rabbitmq.Client
	exchange string
}

func NewRabbitPublisher(client *rabbitmq.Client, exchange string) *RabbitPublisher {
	return &RabbitPublisher{client: client, exchange: exchange}
}

// PublishOrderEvent routes by event type, e.g. "order.patched".
func (p *RabbitPublisher) PublishOrderEvent(ctx context.Context, ev dao.OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	headers := amqp.Table{"x-source": "orders-api"}
	if err := p.client.Publish(ctx, p.exchange, string(ev.Type), body, headers, "application/json", true); err != nil {
		return fmt.Errorf("failed to publish %s: %w", ev.Type, err)
	}
	return nil
}
