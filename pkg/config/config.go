package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dochub-io/dochub/pkg/observability"
	"github.com/dochub-io/dochub/pkg/storage"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storage configuration
	Storage storage.Config

	// Observability configuration
	Observability ObservabilityConfig

	// Snippets configuration
	Snippets SnippetsConfig

	// Maintenance configuration
	Maintenance MaintenanceConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// SnippetsConfig holds snippet generator settings
type SnippetsConfig struct {
	// TargetsFile optionally points at a YAML file overriding target
	// metadata (display names, enabled flags). Empty means built-ins
	// only.
	TargetsFile string
}

// MaintenanceConfig holds background maintenance settings
type MaintenanceConfig struct {
	// InviteCleanupSchedule is a cron expression for purging expired
	// invitations.
	InviteCleanupSchedule string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Storage:       loadStorageConfig(),
		Observability: loadObservabilityConfig(),
		Snippets: SnippetsConfig{
			TargetsFile: getEnv("DOCHUB_SNIPPET_TARGETS_FILE", ""),
		},
		Maintenance: MaintenanceConfig{
			InviteCleanupSchedule: getEnv("DOCHUB_INVITE_CLEANUP_SCHEDULE", "0 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("DOCHUB_HOST", "0.0.0.0"),
		Port:            getEnv("DOCHUB_PORT", "8080"),
		ReadTimeout:     getEnvDuration("DOCHUB_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("DOCHUB_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("DOCHUB_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("DOCHUB_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("DOCHUB_HEALTH_PORT", "9090"),
	}
}

// loadStorageConfig loads storage configuration from environment
func loadStorageConfig() storage.Config {
	cfg := storage.DefaultConfig()

	if driver := getEnv("DOCHUB_DB_DRIVER", ""); driver != "" {
		cfg.Driver = driver
	}
	if dsn := getEnv("DOCHUB_DB_DSN", ""); dsn != "" {
		cfg.DSN = dsn
	}
	if maxConns := getEnvInt("DOCHUB_DB_MAX_CONNS", 0); maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	if minConns := getEnvInt("DOCHUB_DB_MIN_CONNS", 0); minConns > 0 {
		cfg.MinConns = minConns
	}
	if timeout := getEnvDuration("DOCHUB_DB_TIMEOUT", 0); timeout > 0 {
		cfg.Timeout = timeout
	}

	if redisURL := getEnv("DOCHUB_REDIS_URL", ""); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if redisPassword := getEnv("DOCHUB_REDIS_PASSWORD", ""); redisPassword != "" {
		cfg.RedisPassword = redisPassword
	}
	if redisDB := getEnvInt("DOCHUB_REDIS_DB", -1); redisDB >= 0 {
		cfg.RedisDB = redisDB
	}
	if redisMaxRetries := getEnvInt("DOCHUB_REDIS_MAX_RETRIES", 0); redisMaxRetries > 0 {
		cfg.RedisMaxRetries = redisMaxRetries
	}
	if redisPoolSize := getEnvInt("DOCHUB_REDIS_POOL_SIZE", 0); redisPoolSize > 0 {
		cfg.RedisPoolSize = redisPoolSize
	}

	if cacheEnabled := getEnv("DOCHUB_CACHE_ENABLED", ""); cacheEnabled != "" {
		cfg.CacheEnabled = strings.ToLower(cacheEnabled) == "true"
	}
	if size := getEnvInt("DOCHUB_COLLECTION_CACHE_SIZE", 0); size > 0 {
		cfg.CollectionCacheSize = size
	}

	return cfg
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       parseLogLevel(getEnv("DOCHUB_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("DOCHUB_METRICS_ENABLED", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	switch c.Storage.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("invalid database driver: %s (must be sqlite3 or postgres)", c.Storage.Driver)
	}
	if c.Storage.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}

	if c.Storage.CacheEnabled && c.Storage.CollectionCacheSize <= 0 {
		return fmt.Errorf("collection cache size must be positive when caching is enabled")
	}

	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
