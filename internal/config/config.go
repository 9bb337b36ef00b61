package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Sheet  SheetConfig
	Server ServerConfig
	Redis  RedisConfig
	MySQL  MySQLConfig
}

// SheetConfig describes the backing spreadsheet
type SheetConfig struct {
	Path          string
	SheetName     string
	LegacyHeaders bool
	MinMatches    int
}

type ServerConfig struct {
	HTTPAddr        string
	GRPCAddr        string
	ShutdownTimeout time.Duration
}

// RedisConfig is optional; an empty Addr selects the in-memory guard
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	LockTTL  time.Duration
}

// MySQLConfig is optional; an empty DSN disables movement history
type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Load reads configuration from .env (if present) and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Sheet: SheetConfig{
			Path:          getEnvOrDefault("ESTOQUE_FILE", "estoque_mercearia.xlsx"),
			SheetName:     getEnvOrDefault("SHEET_NAME", "Estoque"),
			LegacyHeaders: getEnvBoolOrDefault("LEGACY_HEADERS", false),
			MinMatches:    getEnvIntOrDefault("HEADER_MIN_MATCHES", 3),
		},
		Server: ServerConfig{
			HTTPAddr:        getEnvOrDefault("HTTP_ADDR", ":8080"),
			GRPCAddr:        getEnvOrDefault("GRPC_ADDR", ":50051"),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
			LockTTL:  getEnvDurationOrDefault("LOCK_TTL", 10*time.Second),
		},
		MySQL: MySQLConfig{
			DSN:             strings.TrimSpace(os.Getenv("MYSQL_DSN")),
			MaxOpenConns:    getEnvIntOrDefault("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvIntOrDefault("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDurationOrDefault("MYSQL_CONN_MAX_LIFETIME", 5*time.Minute),
		},
	}

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func validate(config *Config) error {
	if strings.TrimSpace(config.Sheet.Path) == "" {
		return errors.New("ESTOQUE_FILE is required")
	}
	if config.Sheet.MinMatches < 1 || config.Sheet.MinMatches > 4 {
		return fmt.Errorf("HEADER_MIN_MATCHES must be between 1 and 4, got %d", config.Sheet.MinMatches)
	}
	if config.Redis.LockTTL <= 0 {
		return errors.New("LOCK_TTL must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on", "sim":
		return true
	case "0", "false", "no", "n", "off", "nao":
		return false
	default:
		return defaultValue
	}
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return duration
		}
	}
	return defaultValue
}
