package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/userreconcile/internal/domain"
	"github.com/osse101/userreconcile/internal/logger"
	"github.com/osse101/userreconcile/internal/metrics"
	"github.com/osse101/userreconcile/internal/repository"
	"github.com/osse101/userreconcile/internal/source"
)

// Service copies a source into its staged table
type Service interface {
	// LoadAuthoritative replaces the authoritative snapshot, inserting each
	// fetched batch as it arrives
	LoadAuthoritative(ctx context.Context, src source.AuthoritativeSource) (domain.Snapshot, error)

	// LoadSecondary replaces the secondary snapshot one document at a time
	LoadSecondary(ctx context.Context, src source.SecondarySource) (domain.Snapshot, error)
}

// Config tunes batching and progress reporting
type Config struct {
	BatchSize     int
	ProgressEvery int
}

type service struct {
	staging repository.Staging
	log     *slog.Logger
	metrics *metrics.Recorder
	cfg     Config
	printer *message.Printer
	now     func() time.Time
}

// NewService creates a new loader service
func NewService(staging repository.Staging, log *slog.Logger, rec *metrics.Recorder, cfg Config) Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = DefaultProgressEvery
	}
	return &service{
		staging: staging,
		log:     log,
		metrics: rec,
		cfg:     cfg,
		printer: message.NewPrinter(language.English),
		now:     time.Now,
	}
}

func (s *service) LoadAuthoritative(ctx context.Context, src source.AuthoritativeSource) (domain.Snapshot, error) {
	table := domain.TableAuthoritative
	log := logger.FromContext(ctx, s.log).With("table", table)
	log.Info(LogMsgLoadStarted, "source", src.Describe(), "batch_size", s.cfg.BatchSize)
	start := s.now()

	w, err := s.staging.BeginReplace(ctx, table, runID(ctx))
	if err != nil {
		s.metrics.LoadFailed(table)
		return domain.Snapshot{}, fmt.Errorf("%s %s: %w", ErrMsgLoadFailed, table, err)
	}

	err = src.StreamUsers(ctx, s.cfg.BatchSize, func(batch []domain.AuthoritativeUser) error {
		if err := w.InsertAuthoritative(ctx, batch...); err != nil {
			return err
		}
		log.Info(LogMsgRowsLoaded, "rows", s.count(w.Rows()))
		return nil
	})
	if err != nil {
		return s.abort(log, w, table, err)
	}

	return s.commit(ctx, log, w, table, src.Describe(), start)
}

func (s *service) LoadSecondary(ctx context.Context, src source.SecondarySource) (domain.Snapshot, error) {
	table := domain.TableSecondary
	log := logger.FromContext(ctx, s.log).With("table", table)
	log.Info(LogMsgLoadStarted, "source", src.Describe())
	start := s.now()

	w, err := s.staging.BeginReplace(ctx, table, runID(ctx))
	if err != nil {
		s.metrics.LoadFailed(table)
		return domain.Snapshot{}, fmt.Errorf("%s %s: %w", ErrMsgLoadFailed, table, err)
	}

	every := int64(s.cfg.ProgressEvery)
	err = src.EachUser(ctx, func(u domain.SecondaryUser) error {
		if err := w.InsertSecondary(ctx, u); err != nil {
			return err
		}
		if n := w.Rows(); n%every == 0 {
			log.Info(LogMsgRowsLoaded, "rows", s.count(n))
		}
		return nil
	})
	if err != nil {
		return s.abort(log, w, table, err)
	}

	return s.commit(ctx, log, w, table, src.Describe(), start)
}

func (s *service) commit(ctx context.Context, log *slog.Logger, w repository.SnapshotWriter, table domain.Table, desc string, start time.Time) (domain.Snapshot, error) {
	snap, err := w.Commit(ctx, desc)
	if err != nil {
		return s.abort(log, w, table, err)
	}

	took := s.now().Sub(start)
	s.metrics.SnapshotCommitted(snap, took)
	log.Info(LogMsgLoadFinished, "rows", s.count(snap.RowCount), "duration", took.Round(time.Millisecond))
	return snap, nil
}

func (s *service) abort(log *slog.Logger, w repository.SnapshotWriter, table domain.Table, cause error) (domain.Snapshot, error) {
	if err := w.Rollback(); err != nil {
		log.Error(LogMsgRollbackFailed, "error", err)
	}
	s.metrics.LoadFailed(table)
	log.Warn(LogMsgLoadRolledBack, "rows_discarded", s.count(w.Rows()), "error", cause)
	return domain.Snapshot{}, fmt.Errorf("%s %s: %w", ErrMsgLoadFailed, table, cause)
}

// count formats n with thousands separators for progress lines
func (s *service) count(n int64) string {
	return s.printer.Sprintf("%d", n)
}

func runID(ctx context.Context) string {
	if id, ok := logger.RunIDFromContext(ctx); ok {
		return id
	}
	return logger.GenerateRunID()
}
