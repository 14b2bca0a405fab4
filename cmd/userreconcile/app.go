package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/osse101/userreconcile/internal/config"
	"github.com/osse101/userreconcile/internal/database/sqlite"
	"github.com/osse101/userreconcile/internal/domain"
	"github.com/osse101/userreconcile/internal/logger"
	"github.com/osse101/userreconcile/internal/metrics"
	"github.com/osse101/userreconcile/internal/repository"
)

// app carries what every command shares for one invocation
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Recorder
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer

	// prompt reads a secret without echo
	prompt func(label string) (string, error)

	staging *sqlite.Store
	details map[string]interface{}
	now     func() time.Time
}

// store opens the staging database on first use and keeps it for the rest
// of the invocation
func (a *app) store(ctx context.Context) (*sqlite.Store, error) {
	if a.staging != nil {
		return a.staging, nil
	}
	st, err := sqlite.Open(ctx, a.cfg.StagingPath)
	if err != nil {
		return nil, err
	}
	a.staging = st
	return st, nil
}

// password returns the environment override when set, otherwise prompts
func (a *app) password(override *string, label string) (string, error) {
	if override != nil {
		return *override, nil
	}
	return a.prompt(label)
}

// finish writes the run log entry and metrics textfile and releases the
// staging store. Failures here are logged but never change the exit status.
func (a *app) finish(ctx context.Context, runID, command string, started time.Time, runErr error) {
	log := logger.FromContext(ctx, a.log)
	finished := a.now()
	outcome := domain.OutcomeSuccess
	if runErr != nil {
		outcome = domain.OutcomeFailure
		a.details["error"] = runErr.Error()
	}

	if a.staging != nil {
		run := domain.RunRecord{
			RunID:      runID,
			Command:    command,
			Outcome:    outcome,
			Details:    a.details,
			StartedAt:  started,
			FinishedAt: finished,
		}
		recordRun(ctx, log, a.staging, run)
		if err := a.staging.Close(); err != nil {
			log.Error("Failed to close staging database", "error", err)
		}
		a.staging = nil
	}

	a.metrics.RunFinished(command, outcome, finished)
	if a.cfg.MetricsTextfile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
			log.Error("Failed to write metrics", "error", err)
		} else {
			log.Debug(metrics.LogMsgMetricsWritten, "path", a.cfg.MetricsTextfile)
		}
	}
}

// recordRun appends run to the audit trail; a failure is only logged
func recordRun(ctx context.Context, log *slog.Logger, runs repository.RunLog, run domain.RunRecord) {
	if err := runs.LogRun(ctx, run); err != nil {
		log.Error("Failed to record run", "run_id", run.RunID, "error", err)
	}
}

func usageError(cmd Command) error {
	return fmt.Errorf("%w: expected syntax: %s %s", domain.ErrUsage, appName, cmd.Usage())
}
