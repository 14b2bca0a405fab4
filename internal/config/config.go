package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	StagingPath string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=text json"`
	LogDir      string
	Environment string `validate:"required"`

	AuthoritativeDriver string `validate:"oneof=mysql postgres"`
	AuthoritativeTable  string `validate:"required"`
	SecondaryCollection string `validate:"required"`
	SecondaryAuthSource string

	// Passwords are nil unless supplied through the environment, in which
	// case the interactive prompt is skipped.
	AuthoritativePassword *string
	SecondaryPassword     *string

	FetchBatchSize  int           `validate:"min=1"`
	ProgressEvery   int           `validate:"min=1"`
	ConnectTimeout  time.Duration `validate:"gt=0"`
	MaxSnapshotAge  time.Duration `validate:"min=0"`
	MetricsTextfile string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		StagingPath: getEnv(EnvStagingPath, DefaultStagingPath),
		LogLevel:    getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:   getEnv(EnvLogFormat, DefaultLogFormat),
		LogDir:      getEnv(EnvLogDir, ""),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),

		AuthoritativeDriver: getEnv(EnvAuthoritativeDriver, DefaultAuthoritativeDriver),
		AuthoritativeTable:  getEnv(EnvAuthoritativeTable, DefaultAuthoritativeTable),
		SecondaryCollection: getEnv(EnvSecondaryCollection, DefaultSecondaryCollection),
		SecondaryAuthSource: getEnv(EnvSecondaryAuthSource, ""),

		AuthoritativePassword: lookupEnv(EnvAuthoritativePassword),
		SecondaryPassword:     lookupEnv(EnvSecondaryPassword),

		FetchBatchSize:  getEnvAsInt(EnvFetchBatchSize, DefaultFetchBatchSize),
		ProgressEvery:   getEnvAsInt(EnvProgressEvery, DefaultProgressEvery),
		ConnectTimeout:  getEnvAsDuration(EnvConnectTimeout, DefaultConnectTimeout),
		MaxSnapshotAge:  getEnvAsDuration(EnvMaxSnapshotAge, DefaultMaxSnapshotAge),
		MetricsTextfile: getEnv(EnvMetricsTextfile, ""),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// lookupEnv returns nil when key is unset; an empty value is still a value
func lookupEnv(key string) *string {
	if value, exists := os.LookupEnv(key); exists {
		return &value
	}
	return nil
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
