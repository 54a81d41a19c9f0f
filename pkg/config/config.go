package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig      `envconfig:"SERVER"`
	Database    DatabaseConfig    `envconfig:"DB"`
	AzureOpenAI AzureOpenAIConfig `envconfig:"AZURE_OPENAI"`
	Worker      WorkerConfig      `envconfig:"WORKER"`
	Redis       RedisConfig       `envconfig:"REDIS"`
	Storage     StorageConfig     `envconfig:"STORAGE"`
	RabbitMQ    RabbitMQConfig    `envconfig:"RABBITMQ"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL            string        `envconfig:"URL"`
	Host           string        `envconfig:"HOST" default:"localhost"`
	Port           string        `envconfig:"PORT" default:"5432"`
	User           string        `envconfig:"USER" default:"postgres"`
	Password       string        `envconfig:"PASSWORD" default:"postgres"`
	Name           string        `envconfig:"NAME" default:"meeting_actions"`
	SSLMode        string        `envconfig:"SSLMODE" default:"disable"`
	MaxConns       int           `envconfig:"MAX_CONNS" default:"25"`
	MinConns       int           `envconfig:"MIN_CONNS" default:"5"`
	AutoMigrate    bool          `envconfig:"AUTO_MIGRATE" default:"false"`
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"30s"`
}

// AzureOpenAIConfig holds the chat-completion endpoint settings used by the worker
type AzureOpenAIConfig struct {
	Endpoint   string        `envconfig:"ENDPOINT"`
	Deployment string        `envconfig:"DEPLOYMENT"`
	APIKey     string        `envconfig:"API_KEY"`
	APIVersion string        `envconfig:"API_VERSION" default:"2024-02-15-preview"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"120s"`
}

// WorkerConfig holds background processing configuration
type WorkerConfig struct {
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"2s"`
	JobTimeout   time.Duration `envconfig:"JOB_TIMEOUT" default:"5m"`
	StaleAfter   time.Duration `envconfig:"STALE_AFTER" default:"15m"`
	MetricsPort  string        `envconfig:"METRICS_PORT" default:"9091"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled   bool          `envconfig:"ENABLED" default:"false"`
	Host      string        `envconfig:"HOST" default:"localhost"`
	Port      string        `envconfig:"PORT" default:"6379"`
	Password  string        `envconfig:"PASSWORD"`
	DB        int           `envconfig:"DB" default:"0"`
	ResultTTL time.Duration `envconfig:"RESULT_TTL" default:"24h"`
}

// StorageConfig holds object storage configuration for result archives
type StorageConfig struct {
	Enabled         bool   `envconfig:"ENABLED" default:"false"`
	Endpoint        string `envconfig:"ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"BUCKET" default:"meeting-actions"`
	UseSSL          bool   `envconfig:"USE_SSL" default:"false"`
}

// RabbitMQConfig holds job event publishing configuration; an empty URL disables publishing
type RabbitMQConfig struct {
	URL   string `envconfig:"URL"`
	Queue string `envconfig:"QUEUE" default:"job_events"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Worker.PollInterval <= 0 {
		return fmt.Errorf("WORKER_POLL_INTERVAL must be positive")
	}
	if c.Worker.JobTimeout <= 0 {
		return fmt.Errorf("WORKER_JOB_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Redis.Enabled && c.Redis.ResultTTL <= 0 {
		return fmt.Errorf("REDIS_RESULT_TTL must be positive")
	}
	return nil
}

// ValidateWorker checks the settings the worker cannot start without
func (c *Config) ValidateWorker() error {
	if c.AzureOpenAI.Endpoint == "" {
		return fmt.Errorf("AZURE_OPENAI_ENDPOINT is required")
	}
	if c.AzureOpenAI.Deployment == "" {
		return fmt.Errorf("AZURE_OPENAI_DEPLOYMENT is required")
	}
	if c.AzureOpenAI.APIKey == "" {
		return fmt.Errorf("AZURE_OPENAI_API_KEY is required")
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
