package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the loaded values and reports every offending setting at once
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	problems := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s (%s=%v)", fieldEnv[e.Field()], e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
}

// fieldEnv maps struct fields back to the variables users actually set
var fieldEnv = map[string]string{
	"StagingPath":         EnvStagingPath,
	"LogLevel":            EnvLogLevel,
	"LogFormat":           EnvLogFormat,
	"Environment":         EnvEnvironment,
	"AuthoritativeDriver": EnvAuthoritativeDriver,
	"AuthoritativeTable":  EnvAuthoritativeTable,
	"SecondaryCollection": EnvSecondaryCollection,
	"FetchBatchSize":      EnvFetchBatchSize,
	"ProgressEvery":       EnvProgressEvery,
	"ConnectTimeout":      EnvConnectTimeout,
	"MaxSnapshotAge":      EnvMaxSnapshotAge,
}

// Warnings returns non-fatal remarks about the configuration
func (c *Config) Warnings() []string {
	var warnings []string

	if c.AuthoritativePassword != nil {
		warnings = append(warnings, fmt.Sprintf(WarnPasswordFromEnv, EnvAuthoritativePassword))
	}
	if c.SecondaryPassword != nil {
		warnings = append(warnings, fmt.Sprintf(WarnPasswordFromEnv, EnvSecondaryPassword))
	}
	if c.MaxSnapshotAge == 0 {
		warnings = append(warnings, WarnStalenessDisabled)
	}

	return warnings
}
