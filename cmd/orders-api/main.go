package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orders-api/internal/common/logger"
	"orders-api/internal/common/metrics"
	"orders-api/internal/common/telemetry"
	"orders-api/internal/config"
	"orders-api/internal/connections/database"
	"orders-api/internal/connections/rabbitmq"
	"orders-api/internal/microservices/notificator"
	"orders-api/internal/microservices/order"
	"orders-api/internal/microservices/order/handlers"
	"orders-api/internal/microservices/order/service"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orders-api",
		Short: "HTTP API over the agents, customer and orders tables",
		Long: `Serves the sample orders database over HTTP.

Configuration comes from an optional YAML file, a .env file and ORDERS_*
environment variables; flags override all of them.

Example:
  orders-api --config config.yaml --port 3000`,
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringP("config", "c", "", "Path to configuration file (YAML)")
	rootCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")
	rootCmd.Flags().StringP("log-level", "l", "", "Log level (debug, info, warn, error)")

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Follow order events published to the broker",
		RunE:  runEvents,
	}
	eventsCmd.Flags().StringP("config", "c", "", "Path to configuration file (YAML)")
	eventsCmd.Flags().String("queue", "", "Durable queue to consume from (default: exclusive, server-named)")
	rootCmd.AddCommand(eventsCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	return rootCmd
}

// loadConfig reads the configuration and applies flag overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("port") {
		if cfg.Server.Port, err = cmd.Flags().GetInt("port"); err != nil {
			return nil, fmt.Errorf("failed to get port flag: %w", err)
		}
	}
	if cmd.Flags().Changed("log-level") {
		if cfg.Logging.Level, err = cmd.Flags().GetString("log-level"); err != nil {
			return nil, fmt.Errorf("failed to get log-level flag: %w", err)
		}
	}
	return cfg, cfg.Validate()
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	closer := logger.Setup(logger.Options{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty, File: cfg.Logging.File})
	defer closer.Close()
	lg := logger.New("orders-api")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := telemetry.SetupProvider(ctx, cfg.Telemetry)
	if err != nil {
		lg.Error("telemetry_setup_failed", err, nil)
		return err
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		if err := shutdownTracing(sctx); err != nil {
			lg.Warn("telemetry_shutdown_failed", err, nil)
		}
	}()

	db, err := database.ConnectDB(ctx, cfg.Database)
	if err != nil {
		lg.Error("db_connection_failed", err, map[string]any{"driver": cfg.Database.Driver, "host": cfg.Database.Host})
		return err
	}
	gw := database.NewGateway(db, cfg.Database.QueryTimeout, lg)
	defer gw.Close()
	lg.Info("db_connected", map[string]any{
		"driver":    cfg.Database.Driver,
		"host":      cfg.Database.Host,
		"database":  cfg.Database.Database,
		"pool_size": cfg.Database.MaxConns,
	})

	m := metrics.New()
	if err := m.RegisterDB(gw.DB().DB, cfg.Database.Database); err != nil {
		lg.Warn("db_metrics_register_failed", err, nil)
	}

	var (
		pub    service.EventPublisher = service.NopPublisher{}
		broker handlers.BrokerPinger
	)
	if cfg.RabbitMQ.Enabled {
		rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			lg.Error("rabbitmq_connection_failed", err, map[string]any{"host": cfg.RabbitMQ.Host})
			return err
		}
		defer rmq.Close()
		if err := rmq.DeclareExchange(cfg.RabbitMQ.Exchange); err != nil {
			lg.Error("rabbitmq_setup_failed", err, map[string]any{"exchange": cfg.RabbitMQ.Exchange})
			return err
		}
		pub = service.NewRabbitPublisher(rmq, cfg.RabbitMQ.Exchange)
		broker = rmq
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host, "exchange": cfg.RabbitMQ.Exchange})
	}

	lg.Info("service_started", map[string]any{"port": cfg.Server.Port, "version": version})
	if err := order.Run(ctx, cfg, gw, pub, broker, m, lg); err != nil {
		lg.Error("server_failed", err, nil)
		return err
	}
	lg.Info("service_stopped", nil)
	return nil
}

func runEvents(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	queue, err := cmd.Flags().GetString("queue")
	if err != nil {
		return fmt.Errorf("failed to get queue flag: %w", err)
	}

	closer := logger.Setup(logger.Options{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty, File: cfg.Logging.File})
	defer closer.Close()
	lg := logger.New("orders-events")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		lg.Error("rabbitmq_connection_failed", err, map[string]any{"host": cfg.RabbitMQ.Host})
		return err
	}
	defer rmq.Close()
	if err := rmq.DeclareExchange(cfg.RabbitMQ.Exchange); err != nil {
		lg.Error("rabbitmq_setup_failed", err, map[string]any{"exchange": cfg.RabbitMQ.Exchange})
		return err
	}
	return notificator.Start(ctx, rmq, cfg.RabbitMQ.Exchange, queue, lg)
}
