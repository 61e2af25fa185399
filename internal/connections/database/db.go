package database

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"orders-api/internal/config"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// DriverName maps the configured backend to its registered database/sql driver.
func DriverName(backend string) (string, error) {
	switch backend {
	case config.DriverMySQL:
		return "mysql", nil
	case config.DriverPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", backend)
	}
}

// DSN renders the connection string for the configured backend.
func DSN(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.Database
		mc.ParseTime = true
		return mc.FormatDSN(), nil
	case config.DriverPostgres:
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, sslmode), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// ConnectDB opens the bounded pool and waits until the backend answers a ping.
func ConnectDB(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver, err := DriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	maxRetries := cfg.ConnectRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	const pingTTL = 5 * time.Second

	var db *sqlx.DB
	for i := 1; i <= maxRetries; i++ {
		db, err = sqlx.Open(driver, dsn)
		if err == nil {
			ConfigurePool(db, cfg.MaxConns)

			pctx, cancel := context.WithTimeout(ctx, pingTTL)
			err = db.PingContext(pctx)
			cancel()
			if err == nil {
				return db, nil
			}
			_ = db.Close()
		}

		if i == maxRetries {
			break
		}
		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("db connect canceled: %w", ctx.Err())
		}
	}

	return nil, fmt.Errorf("database unreachable after %d attempts: %w", maxRetries, err)
}

// ConfigurePool caps the pool at size connections. Callers beyond the cap wait for a release.
func ConfigurePool(db *sqlx.DB, size int) {
	if size <= 0 {
		size = 5
	}
	db.SetMaxOpenConns(size)
	db.SetMaxIdleConns(size)
	db.SetConnMaxIdleTime(5 * time.Minute)
}
