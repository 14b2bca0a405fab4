package main

import (
	"io"

	"github.com/osse101/userreconcile/internal/config"
	"github.com/osse101/userreconcile/internal/logger"
)

// initLogger builds the process logger from app configuration. Logs go to w
// so stdout stays reserved for reports.
func initLogger(cfg *config.Config, w io.Writer) *logger.Logger {
	// Determine if we should add source info (only in dev)
	addSource := cfg.Environment == logger.EnvironmentDev

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		version,
		cfg.Environment,
		cfg.LogDir,
		addSource,
	)

	return logger.New(loggerConfig, w)
}
