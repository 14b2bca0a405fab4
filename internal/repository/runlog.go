package repository

import (
	"context"

	"github.com/osse101/userreconcile/internal/domain"
)

// RunLog defines the interface for the invocation audit trail
type RunLog interface {
	// LogRun stores one finished invocation
	LogRun(ctx context.Context, run domain.RunRecord) error

	// RecentRuns retrieves the newest runs first
	RecentRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
