// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"finflow-ledger/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	LogLevel   string
	DB         db.Config

	// Location is used for every month boundary.
	Location *time.Location

	// Identity
	EmailHeader      string
	IntegrationToken string

	AMQP AMQPConfig
}

// AMQPConfig is the broker setup of the ingest worker. An empty URL disables it.
type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

// LoadConfig loads configuration from environment variables, after reading a
// local .env file when one exists.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	tz := getEnv("APP_TIMEZONE", "America/Sao_Paulo")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
	}

	cfg := &AppConfig{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DB: db.Config{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", db.DriverPostgres)),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       dbPort,
			User:       getEnv("DB_USER", "user"),
			Password:   getEnv("DB_PASSWORD", "password"),
			DBName:     getEnv("DB_NAME", "ledgerdb"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "data/ledger.db"),
		},
		Location:         loc,
		EmailHeader:      getEnv("AUTH_EMAIL_HEADER", "X-Auth-Request-Email"),
		IntegrationToken: os.Getenv("INTEGRATION_TOKEN"),
		AMQP: AMQPConfig{
			URL:      os.Getenv("AMQP_URL"),
			Exchange: getEnv("AMQP_EXCHANGE", "ledger"),
			Queue:    getEnv("AMQP_QUEUE", "ledger.transactions"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the application cannot start with.
func (c *AppConfig) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q", c.ServerPort)
	}
	switch c.DB.Driver {
	case db.DriverPostgres:
		if c.DB.Host == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for postgres")
		}
	case db.DriverSQLite:
		if c.DB.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for sqlite")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: want postgres or sqlite", c.DB.Driver)
	}
	if strings.TrimSpace(c.EmailHeader) == "" {
		return fmt.Errorf("AUTH_EMAIL_HEADER must not be blank")
	}
	return nil
}

// ValidateAMQP checks the broker settings needed by the ingest worker.
func (c *AppConfig) ValidateAMQP() error {
	if c.AMQP.URL == "" {
		return fmt.Errorf("AMQP_URL is required")
	}
	if c.AMQP.Exchange == "" || c.AMQP.Queue == "" {
		return fmt.Errorf("AMQP_EXCHANGE and AMQP_QUEUE are required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
