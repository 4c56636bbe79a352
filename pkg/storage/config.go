package storage

import "time"

// Config holds storage backend configuration.
type Config struct {
	// Driver is "postgres" or "sqlite3".
	Driver string
	// DSN is the driver-specific connection string.
	DSN string

	// Connection pool settings
	MaxConns    int
	MinConns    int
	Timeout     time.Duration
	MaxLifetime time.Duration
	MaxIdleTime time.Duration

	// Redis config (empty RedisURL disables the cache layer)
	RedisURL        string
	RedisPassword   string
	RedisDB         int
	RedisMaxRetries int
	RedisPoolSize   int

	// Cache config
	CacheEnabled bool
	CacheTTL     map[string]time.Duration
	// CollectionCacheSize bounds the in-process parsed-collection LRU.
	CollectionCacheSize int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Driver:          "sqlite3",
		DSN:             "file:dochub.db?_foreign_keys=on",
		MaxConns:        20,
		MinConns:        2,
		Timeout:         10 * time.Second,
		MaxLifetime:     30 * time.Minute,
		MaxIdleTime:     5 * time.Minute,
		RedisDB:         0,
		RedisMaxRetries: 3,
		RedisPoolSize:   10,
		CacheEnabled:    true,
		CacheTTL: map[string]time.Duration{
			"page":    5 * time.Minute,
			"project": 5 * time.Minute,
		},
		CollectionCacheSize: 512,
	}
}
