// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Server settings:
//
//	DOCHUB_HOST="0.0.0.0"
//	DOCHUB_PORT="8080"
//	DOCHUB_HEALTH_PORT="9090"
//	DOCHUB_READ_TIMEOUT="15s"
//	DOCHUB_WRITE_TIMEOUT="15s"
//
// Storage settings:
//
//	DOCHUB_DB_DRIVER="postgres"  # sqlite3, postgres
//	DOCHUB_DB_DSN="postgres://localhost/dochub"
//	DOCHUB_DB_MAX_CONNS="20"
//
// Cache settings:
//
//	DOCHUB_CACHE_ENABLED="true"
//	DOCHUB_REDIS_URL="redis://localhost:6379"
//	DOCHUB_REDIS_POOL_SIZE="10"
//	DOCHUB_COLLECTION_CACHE_SIZE="512"
//
// Observability settings:
//
//	DOCHUB_LOG_LEVEL="info"  # debug, info, warn, error
//	DOCHUB_METRICS_ENABLED="true"
//
// Snippets and maintenance:
//
//	DOCHUB_SNIPPET_TARGETS_FILE="/etc/dochub/targets.yaml"
//	DOCHUB_INVITE_CLEANUP_SCHEDULE="0 * * * *"
package config
