package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnvVars = []string{
	EnvStagingPath, EnvLogLevel, EnvLogFormat, EnvLogDir, EnvEnvironment,
	EnvAuthoritativeDriver, EnvAuthoritativeTable, EnvAuthoritativePassword,
	EnvSecondaryCollection, EnvSecondaryAuthSource, EnvSecondaryPassword,
	EnvFetchBatchSize, EnvProgressEvery, EnvConnectTimeout, EnvMaxSnapshotAge,
	EnvMetricsTextfile,
}

// clearEnvVars unsets every variable Load reads and restores it afterwards
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultStagingPath, cfg.StagingPath)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "mysql", cfg.AuthoritativeDriver)
		assert.Equal(t, "auth_user", cfg.AuthoritativeTable)
		assert.Equal(t, "users", cfg.SecondaryCollection)
		assert.Equal(t, 10000, cfg.FetchBatchSize)
		assert.Equal(t, 1000, cfg.ProgressEvery)
		assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
		assert.Equal(t, 24*time.Hour, cfg.MaxSnapshotAge)
		assert.Nil(t, cfg.AuthoritativePassword)
		assert.Nil(t, cfg.SecondaryPassword)
		assert.Empty(t, cfg.MetricsTextfile)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvStagingPath, "/var/lib/userreconcile/staging.db")
		t.Setenv(EnvLogLevel, "debug")
		t.Setenv(EnvLogFormat, "json")
		t.Setenv(EnvEnvironment, "prod")
		t.Setenv(EnvAuthoritativeDriver, "postgres")
		t.Setenv(EnvAuthoritativeTable, "public.accounts")
		t.Setenv(EnvSecondaryCollection, "forum_users")
		t.Setenv(EnvSecondaryAuthSource, "admin")
		t.Setenv(EnvFetchBatchSize, "500")
		t.Setenv(EnvProgressEvery, "50")
		t.Setenv(EnvConnectTimeout, "5s")
		t.Setenv(EnvMaxSnapshotAge, "2h")
		t.Setenv(EnvMetricsTextfile, "/tmp/userreconcile.prom")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "/var/lib/userreconcile/staging.db", cfg.StagingPath)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "prod", cfg.Environment)
		assert.Equal(t, "postgres", cfg.AuthoritativeDriver)
		assert.Equal(t, "public.accounts", cfg.AuthoritativeTable)
		assert.Equal(t, "forum_users", cfg.SecondaryCollection)
		assert.Equal(t, "admin", cfg.SecondaryAuthSource)
		assert.Equal(t, 500, cfg.FetchBatchSize)
		assert.Equal(t, 50, cfg.ProgressEvery)
		assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
		assert.Equal(t, 2*time.Hour, cfg.MaxSnapshotAge)
		assert.Equal(t, "/tmp/userreconcile.prom", cfg.MetricsTextfile)
	})

	t.Run("empty password is still a supplied password", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvAuthoritativePassword, "")
		t.Setenv(EnvSecondaryPassword, "s3cret")

		cfg, err := Load()

		require.NoError(t, err)
		require.NotNil(t, cfg.AuthoritativePassword)
		assert.Empty(t, *cfg.AuthoritativePassword)
		require.NotNil(t, cfg.SecondaryPassword)
		assert.Equal(t, "s3cret", *cfg.SecondaryPassword)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		testCases := []struct {
			name  string
			key   string
			value string
		}{
			{"unknown driver", EnvAuthoritativeDriver, "oracle"},
			{"unknown log format", EnvLogFormat, "xml"},
			{"unknown log level", EnvLogLevel, "verbose"},
			{"zero batch size", EnvFetchBatchSize, "0"},
			{"negative progress interval", EnvProgressEvery, "-5"},
			{"negative snapshot age", EnvMaxSnapshotAge, "-1h"},
			{"empty staging path", EnvStagingPath, ""},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				clearEnvVars(t)
				t.Setenv(tc.key, tc.value)

				cfg, err := Load()

				assert.Nil(t, cfg)
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid configuration")
				assert.Contains(t, err.Error(), tc.key)
			})
		}
	})

	t.Run("unparsable numbers fall back to defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvFetchBatchSize, "lots")
		t.Setenv(EnvConnectTimeout, "100")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultFetchBatchSize, cfg.FetchBatchSize)
		assert.Equal(t, DefaultConnectTimeout, cfg.ConnectTimeout)
	})
}

func TestConfig_Warnings(t *testing.T) {
	pw := "x"

	t.Run("none by default", func(t *testing.T) {
		cfg := &Config{MaxSnapshotAge: time.Hour}
		assert.Empty(t, cfg.Warnings())
	})

	t.Run("passwords from env and disabled staleness", func(t *testing.T) {
		cfg := &Config{AuthoritativePassword: &pw, SecondaryPassword: &pw}

		warnings := cfg.Warnings()

		require.Len(t, warnings, 3)
		assert.Contains(t, warnings[0], EnvAuthoritativePassword)
		assert.Contains(t, warnings[1], EnvSecondaryPassword)
		assert.Equal(t, WarnStalenessDisabled, warnings[2])
	})
}
