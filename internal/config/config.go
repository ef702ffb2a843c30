package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported storage backends
const (
	StorageDynamoDB = "dynamodb"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Stage       string
	Storage     StorageConfig
	Database    DatabaseConfig
	Chat        ChatConfig
	Log         LogConfig
	RateLimit   RateLimitConfig
}

// StorageConfig selects and configures the item store
type StorageConfig struct {
	Type             string // "dynamodb", "sqlite" or "memory"
	MessagesTable    string
	RsvpTable        string
	Region           string
	Endpoint         string
	MaxRetryAttempts int
}

// DatabaseConfig holds the local SQLite configuration
type DatabaseConfig struct {
	ConnectionString string
	MaxOpenConns     int
}

// ChatConfig holds message and RSVP behaviour settings
type ChatConfig struct {
	MessageTTLDays      int
	MessageHistoryLimit int
	DefaultColor        string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// RateLimitConfig holds the local server rate limit
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("STAGE", "prod")
	v.SetDefault("STORAGE_TYPE", StorageDynamoDB)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("STORAGE_RETRY_ATTEMPTS", 3)
	v.SetDefault("DB_CONNECTION_STRING", "./data/freshsilver.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("MESSAGE_TTL_DAYS", 30)
	v.SetDefault("MESSAGE_HISTORY_LIMIT", 50)
	v.SetDefault("DEFAULT_COLOR", "#0EA5E9")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Stage:       strings.Trim(v.GetString("STAGE"), "/"),
		Storage: StorageConfig{
			Type:             strings.ToLower(v.GetString("STORAGE_TYPE")),
			MessagesTable:    v.GetString("MESSAGES_TABLE"),
			RsvpTable:        v.GetString("RSVP_TABLE"),
			Region:           v.GetString("AWS_REGION"),
			Endpoint:         v.GetString("DYNAMODB_ENDPOINT"),
			MaxRetryAttempts: v.GetInt("STORAGE_RETRY_ATTEMPTS"),
		},
		Database: DatabaseConfig{
			ConnectionString: v.GetString("DB_CONNECTION_STRING"),
			MaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Chat: ChatConfig{
			MessageTTLDays:      v.GetInt("MESSAGE_TTL_DAYS"),
			MessageHistoryLimit: v.GetInt("MESSAGE_HISTORY_LIMIT"),
			DefaultColor:        v.GetString("DEFAULT_COLOR"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageDynamoDB:
		if c.Storage.MessagesTable == "" {
			return fmt.Errorf("MESSAGES_TABLE is required for %s storage", StorageDynamoDB)
		}
		if c.Storage.RsvpTable == "" {
			return fmt.Errorf("RSVP_TABLE is required for %s storage", StorageDynamoDB)
		}
	case StorageSQLite:
		if c.Database.ConnectionString == "" {
			return fmt.Errorf("DB_CONNECTION_STRING is required for %s storage", StorageSQLite)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}

	if c.Chat.MessageTTLDays <= 0 {
		return fmt.Errorf("MESSAGE_TTL_DAYS must be positive, got %d", c.Chat.MessageTTLDays)
	}
	if c.Chat.MessageHistoryLimit <= 0 {
		return fmt.Errorf("MESSAGE_HISTORY_LIMIT must be positive, got %d", c.Chat.MessageHistoryLimit)
	}
	if c.Storage.MaxRetryAttempts < 1 {
		return fmt.Errorf("STORAGE_RETRY_ATTEMPTS must be at least 1, got %d", c.Storage.MaxRetryAttempts)
	}

	return nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
