package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the gate service
type Config struct {
	Telegram TelegramConfig
	Gate     GateConfig
	Delivery DeliveryConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Logging  LoggingConfig
	Service  ServiceConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken            string
	AdminID             int64
	ContentChannelID    int64
	ForceJoinChannelID  int64
	ChannelUsername     string
	EnableNotifications bool
	ProtectContent      bool
}

// GateConfig holds access gate policy
type GateConfig struct {
	// FailOpen excuses channels the bot cannot inspect instead of blocking users
	FailOpen bool
}

// DeliveryConfig holds delivery ledger settings
type DeliveryConfig struct {
	RetentionKeepLast int
	RetentionInterval time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	SQLitePath     string
	MigrationsPath string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	GroupID string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
	Port string
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config   *Config
	Telegram *TelegramConfig
	Gate     *GateConfig
	Delivery *DeliveryConfig
	Database *DatabaseConfig
	Kafka    *KafkaConfig
	Logging  *LoggingConfig
	Service  *ServiceConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:   cfg,
		Telegram: &cfg.Telegram,
		Gate:     &cfg.Gate,
		Delivery: &cfg.Delivery,
		Database: &cfg.Database,
		Kafka:    &cfg.Kafka,
		Logging:  &cfg.Logging,
		Service:  &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken:            getEnv("TELEGRAM_BOT_TOKEN", ""),
			AdminID:             getEnvInt64("ADMIN_ID", 0),
			ContentChannelID:    getEnvInt64("CONTENT_CHANNEL_ID", 0),
			ForceJoinChannelID:  getEnvInt64("FORCE_JOIN_CHANNEL_ID", 0),
			ChannelUsername:     getEnv("CHANNEL_USERNAME", ""),
			EnableNotifications: getEnvBool("ENABLE_NOTIFICATIONS", true),
			ProtectContent:      getEnvBool("PROTECT_CONTENT", true),
		},
		Gate: GateConfig{
			FailOpen: getEnvBool("GATE_FAIL_OPEN", true),
		},
		Delivery: DeliveryConfig{
			RetentionKeepLast: int(getEnvInt64("DELIVERY_RETENTION_KEEP_LAST", 100)),
			RetentionInterval: getEnvDuration("DELIVERY_RETENTION_INTERVAL", time.Hour),
		},
		Database: DatabaseConfig{
			Driver:         strings.ToLower(getEnv("DATABASE_DRIVER", "postgres")),
			Host:           getEnv("DATABASE_HOST", "localhost"),
			Port:           getEnv("DATABASE_PORT", "5432"),
			User:           getEnv("DATABASE_USER", "gateflow"),
			Password:       getEnv("DATABASE_PASSWORD", "gateflow"),
			Name:           getEnv("DATABASE_NAME", "gateflow"),
			SSLMode:        getEnv("DATABASE_SSLMODE", "disable"),
			SQLitePath:     getEnv("DATABASE_SQLITE_PATH", "gateflow.db"),
			MigrationsPath: getEnv("DATABASE_MIGRATIONS_PATH", "file://migrations"),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9093")),
			GroupID: getEnv("KAFKA_GROUP_ID", "gate-service-group"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "gate-service"),
			Port: getEnv("SERVICE_PORT", "8081"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.Telegram.AdminID == 0 {
		return fmt.Errorf("ADMIN_ID is required")
	}

	if c.Telegram.ContentChannelID == 0 {
		return fmt.Errorf("CONTENT_CHANNEL_ID is required")
	}

	if c.Telegram.ForceJoinChannelID == 0 {
		return fmt.Errorf("FORCE_JOIN_CHANNEL_ID is required")
	}

	if c.Delivery.RetentionKeepLast < 1 {
		return fmt.Errorf("DELIVERY_RETENTION_KEEP_LAST must be positive")
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("DATABASE_HOST and DATABASE_NAME are required for postgres")
		}
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("DATABASE_SQLITE_PATH is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}

	return nil
}

// GetDSN returns database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
