package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every application setting.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver         string        `yaml:"driver"` // mysql | postgres
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	Database       string        `yaml:"database"`
	SSLMode        string        `yaml:"sslmode"`
	MaxConns       int           `yaml:"max_conns"`
	QueryTimeout   time.Duration `yaml:"query_timeout"`
	ConnectRetries int           `yaml:"connect_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
}

type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	VHost    string `yaml:"vhost"`
	UseTLS   bool   `yaml:"tls"`
	Exchange string `yaml:"exchange"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
	File   string `yaml:"file"`
}

type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
	Environment string `yaml:"environment"`
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Default mirrors the sample deployment: local MariaDB "sample" database, pool of 5.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           3306,
			User:           "root",
			Password:       "root",
			Database:       "sample",
			SSLMode:        "disable",
			MaxConns:       5,
			ConnectRetries: 10,
			RetryDelay:     2 * time.Second,
		},
		RabbitMQ: RabbitMQConfig{
			Host:     "localhost",
			Port:     5672,
			User:     "guest",
			Password: "guest",
			VHost:    "/",
			Exchange: "orders_topic",
		},
		Logging: LoggingConfig{Level: "info"},
		Telemetry: TelemetryConfig{
			Insecure:    true,
			ServiceName: "orders-api",
		},
	}
}

// LoadConfig builds the configuration from defaults, the YAML file at path (optional when
// empty), a .env file in the working directory and ORDERS_* environment variables, in that order.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("couldn't open the configuration file: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("invalid config: unknown database driver %q", c.Database.Driver))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("invalid config: missing database host"))
	}
	if c.Database.MaxConns <= 0 {
		errs = append(errs, errors.New("invalid config: database.max_conns must be positive"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid config: server.port %d out of range", c.Server.Port))
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.Host == "" {
		errs = append(errs, errors.New("invalid config: missing rabbitmq host"))
	}
	return errors.Join(errs...)
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"ORDERS_DB_DRIVER":         &cfg.Database.Driver,
		"ORDERS_DB_HOST":           &cfg.Database.Host,
		"ORDERS_DB_USER":           &cfg.Database.User,
		"ORDERS_DB_PASSWORD":       &cfg.Database.Password,
		"ORDERS_DB_NAME":           &cfg.Database.Database,
		"ORDERS_DB_SSLMODE":        &cfg.Database.SSLMode,
		"ORDERS_RABBITMQ_HOST":     &cfg.RabbitMQ.Host,
		"ORDERS_RABBITMQ_USER":     &cfg.RabbitMQ.User,
		"ORDERS_RABBITMQ_PASSWORD": &cfg.RabbitMQ.Password,
		"ORDERS_RABBITMQ_VHOST":    &cfg.RabbitMQ.VHost,
		"ORDERS_LOG_LEVEL":         &cfg.Logging.Level,
		"ORDERS_LOG_FILE":          &cfg.Logging.File,
		"ORDERS_OTLP_ENDPOINT":     &cfg.Telemetry.Endpoint,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	ints := map[string]*int{
		"ORDERS_PORT":          &cfg.Server.Port,
		"ORDERS_DB_PORT":       &cfg.Database.Port,
		"ORDERS_DB_MAX_CONNS":  &cfg.Database.MaxConns,
		"ORDERS_RABBITMQ_PORT": &cfg.RabbitMQ.Port,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
	}

	if v, ok := os.LookupEnv("ORDERS_RABBITMQ_ENABLED"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid ORDERS_RABBITMQ_ENABLED: %w", err)
		}
		cfg.RabbitMQ.Enabled = b
	}
	if v, ok := os.LookupEnv("ORDERS_DB_QUERY_TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid ORDERS_DB_QUERY_TIMEOUT: %w", err)
		}
		cfg.Database.QueryTimeout = d
	}
	return nil
}
