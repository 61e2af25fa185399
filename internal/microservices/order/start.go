package order

import (
	"context"
	"net/http"
	"strconv"

	"orders-api/internal/common/httpx"
	"orders-api/internal/common/logger"
	"orders-api/internal/common/metrics"
	"orders-api/internal/config"
	"orders-api/internal/connections/database"
	"orders-api/internal/microservices/order/handlers"
	"orders-api/internal/microservices/order/repository"
	"orders-api/internal/microservices/order/service"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Run serves the orders API on gw until ctx is cancelled;
// broker may be nil when events are disabled.
func Run(ctx context.Context, cfg *config.Config, gw *database.Gateway, pub service.EventPublisher,
	broker handlers.BrokerPinger, m *metrics.Metrics, lg *logger.Logger) error {
	repo := repository.New(gw)
	svc := service.New(*repo, pub, lg)
	handler := handlers.New(svc, gw, broker, lg)

	srv := httpx.New(":"+strconv.Itoa(cfg.Server.Port), NewHTTPHandler(handler, m, lg), cfg.Server)
	lg.Info("server_listening", map[string]any{"addr": srv.Addr})
	return srv.Run(ctx)
}

// NewHTTPHandler wraps the route table with the middleware stack. Recover sits
// directly on the mux so a panic still reaches the metrics and access log as a
// 500, and the metrics middleware sees the pattern the mux matched.
func NewHTTPHandler(h *handlers.Handler, m *metrics.Metrics, lg *logger.Logger) http.Handler {
	var exposition http.Handler
	if m != nil {
		exposition = m.Handler()
	}
	mux := handlers.Router(h, exposition)

	inner := httpx.Recover(lg)(mux)
	if m != nil {
		inner = m.Middleware(inner)
	}

	return httpx.Chain(inner,
		func(next http.Handler) http.Handler { return otelhttp.NewHandler(next, "orders-api") },
		httpx.RequestID,
		httpx.AccessLog(lg),
	)
}
