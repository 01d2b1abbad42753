package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   collaborator base URLs)
// - default: Values common across all environments (timeouts, log settings)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	Upstream UpstreamConfig
}

// StorageConfig selects the reservation store variant. "postgres" is the
// durable store; "memory" runs everything in-process for local use.
type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// UpstreamConfig is the outbound-call policy for every collaborator: one
// attempt per call with a hard timeout, no retries. A failed validation or
// payment call fails the whole booking attempt synchronously.
type UpstreamConfig struct {
	UserDirectoryURL    string        `envconfig:"USER_DIRECTORY_URL" required:"true"`
	RoomCatalogURL      string        `envconfig:"ROOM_CATALOG_URL" required:"true"`
	HotelDirectoryURL   string        `envconfig:"HOTEL_DIRECTORY_URL" required:"true"`
	PaymentProcessorURL string        `envconfig:"PAYMENT_PROCESSOR_URL" required:"true"`
	NotifierURL         string        `envconfig:"NOTIFIER_URL" default:""`
	Timeout             time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"5s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Upstream: UpstreamConfig{
			UserDirectoryURL:    "http://localhost:15001",
			RoomCatalogURL:      "http://localhost:15002",
			HotelDirectoryURL:   "http://localhost:15003",
			PaymentProcessorURL: "http://localhost:15004",
			Timeout:             time.Second,
		},
	}
}
