package config

import "time"

// Environment variable names
const (
	EnvStagingPath           = "STAGING_PATH"
	EnvLogLevel              = "LOG_LEVEL"
	EnvLogFormat             = "LOG_FORMAT"
	EnvLogDir                = "LOG_DIR"
	EnvEnvironment           = "ENVIRONMENT"
	EnvAuthoritativeDriver   = "AUTHORITATIVE_DRIVER"
	EnvAuthoritativeTable    = "AUTHORITATIVE_TABLE"
	EnvAuthoritativePassword = "AUTHORITATIVE_PASSWORD"
	EnvSecondaryCollection   = "SECONDARY_COLLECTION"
	EnvSecondaryAuthSource   = "SECONDARY_AUTH_SOURCE"
	EnvSecondaryPassword     = "SECONDARY_PASSWORD"
	EnvFetchBatchSize        = "FETCH_BATCH_SIZE"
	EnvProgressEvery         = "PROGRESS_EVERY"
	EnvConnectTimeout        = "CONNECT_TIMEOUT"
	EnvMaxSnapshotAge        = "MAX_SNAPSHOT_AGE"
	EnvMetricsTextfile       = "METRICS_TEXTFILE"
)

// Defaults
const (
	DefaultStagingPath         = "userreconcile.db"
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
	DefaultEnvironment         = "dev"
	DefaultAuthoritativeDriver = "mysql"
	DefaultAuthoritativeTable  = "auth_user"
	DefaultSecondaryCollection = "users"
	DefaultFetchBatchSize      = 10000
	DefaultProgressEvery       = 1000
	DefaultConnectTimeout      = 30 * time.Second
	DefaultMaxSnapshotAge      = 24 * time.Hour
)

// Warnings
const (
	WarnPasswordFromEnv   = "%s is set; prefer the interactive prompt so the password does not linger in the environment"
	WarnStalenessDisabled = "MAX_SNAPSHOT_AGE is 0, snapshot staleness is not checked"
)
