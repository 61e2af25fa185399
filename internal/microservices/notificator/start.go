package notificator

import (
	"context"

	"orders-api/internal/common/logger"
	"orders-api/internal/connections/rabbitmq"
	"orders-api/internal/microservices/notificator/service"
)

// Start follows order events on exchange until ctx is cancelled.
func Start(ctx context.Context, rmqClient *rabbitmq.Client, exchange, queue string, lg *logger.Logger) error {
	return service.NewNotificatorService(rmqClient, exchange, queue, lg).Notify(ctx)
}
