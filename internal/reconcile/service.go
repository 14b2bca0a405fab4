package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/osse101/userreconcile/internal/domain"
	"github.com/osse101/userreconcile/internal/logger"
	"github.com/osse101/userreconcile/internal/metrics"
	"github.com/osse101/userreconcile/internal/repository"
)

// Result is the outcome of one reconciliation over the staged snapshots
type Result struct {
	Authoritative domain.Snapshot
	Secondary     domain.Snapshot
	Orphaned      []domain.Orphaned
	Conflicted    []domain.Conflicted
}

// Findings returns orphaned records followed by conflicted ones
func (r *Result) Findings() []domain.Finding {
	findings := make([]domain.Finding, 0, len(r.Orphaned)+len(r.Conflicted))
	for _, o := range r.Orphaned {
		findings = append(findings, o)
	}
	for _, c := range r.Conflicted {
		findings = append(findings, c)
	}
	return findings
}

// Service classifies staged secondary records. Every query is preceded by
// the sanity check, so nothing is reported against a bad snapshot pair.
type Service interface {
	Reconcile(ctx context.Context) (*Result, error)
	FindOrphaned(ctx context.Context) ([]domain.Orphaned, error)
	FindConflicted(ctx context.Context) ([]domain.Conflicted, error)
}

// Config controls the advisory snapshot checks
type Config struct {
	// MaxSnapshotAge triggers a staleness warning; zero disables it
	MaxSnapshotAge time.Duration
}

type service struct {
	repo    repository.Reconciliation
	log     *slog.Logger
	metrics *metrics.Recorder
	cfg     Config
	now     func() time.Time
}

// NewService creates a new reconciliation service
func NewService(repo repository.Reconciliation, log *slog.Logger, rec *metrics.Recorder, cfg Config) Service {
	return &service{
		repo:    repo,
		log:     log,
		metrics: rec,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *service) Reconcile(ctx context.Context) (*Result, error) {
	log := logger.FromContext(ctx, s.log)

	auth, sec, err := s.checkSnapshots(ctx, log)
	if err != nil {
		return nil, err
	}

	orphaned, err := s.repo.FindOrphaned(ctx)
	if err != nil {
		return nil, err
	}
	conflicted, err := s.repo.FindConflicted(ctx)
	if err != nil {
		return nil, err
	}

	s.metrics.FindingsFound(domain.KindOrphaned, len(orphaned))
	s.metrics.FindingsFound(domain.KindConflicted, len(conflicted))
	log.Info(LogMsgFindingsFound, "orphaned", len(orphaned), "conflicted", len(conflicted))

	return &Result{
		Authoritative: auth,
		Secondary:     sec,
		Orphaned:      orphaned,
		Conflicted:    conflicted,
	}, nil
}

func (s *service) FindOrphaned(ctx context.Context) ([]domain.Orphaned, error) {
	if _, _, err := s.checkSnapshots(ctx, logger.FromContext(ctx, s.log)); err != nil {
		return nil, err
	}
	return s.repo.FindOrphaned(ctx)
}

func (s *service) FindConflicted(ctx context.Context) ([]domain.Conflicted, error) {
	if _, _, err := s.checkSnapshots(ctx, logger.FromContext(ctx, s.log)); err != nil {
		return nil, err
	}
	return s.repo.FindConflicted(ctx)
}

// checkSnapshots reads both metadata records, logs the advisory warnings and
// applies CheckSanity to the recorded row counts.
func (s *service) checkSnapshots(ctx context.Context, log *slog.Logger) (domain.Snapshot, domain.Snapshot, error) {
	auth, err := s.repo.Snapshot(ctx, domain.TableAuthoritative)
	if err != nil {
		return domain.Snapshot{}, domain.Snapshot{}, err
	}
	sec, err := s.repo.Snapshot(ctx, domain.TableSecondary)
	if err != nil {
		return domain.Snapshot{}, domain.Snapshot{}, err
	}

	s.warn(log, auth, sec)

	if err := CheckSanity(auth.RowCount, sec.RowCount); err != nil {
		s.metrics.SanityFailures.Inc()
		log.Error(LogMsgSanityFailed, "error", err)
		return domain.Snapshot{}, domain.Snapshot{}, err
	}

	log.Debug(LogMsgSanityPassed, "authoritative", auth.RowCount, "secondary", sec.RowCount)
	return auth, sec, nil
}

func (s *service) warn(log *slog.Logger, auth, sec domain.Snapshot) {
	if sec.LoadedAt.Before(auth.LoadedAt) {
		log.Warn(LogMsgLoadOrder,
			"authoritative_loaded_at", auth.LoadedAt,
			"secondary_loaded_at", sec.LoadedAt)
	}

	if s.cfg.MaxSnapshotAge <= 0 {
		return
	}
	now := s.now()
	for _, snap := range []domain.Snapshot{auth, sec} {
		if age := now.Sub(snap.LoadedAt); age > s.cfg.MaxSnapshotAge {
			log.Warn(LogMsgStaleSnapshot,
				"table", snap.Table,
				"age", age.Round(time.Second),
				"max_age", s.cfg.MaxSnapshotAge)
		}
	}
}
