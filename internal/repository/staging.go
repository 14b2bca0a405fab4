package repository

import (
	"context"

	"github.com/osse101/userreconcile/internal/domain"
)

// SnapshotWriter fills one staged table inside a single transaction. Nothing
// becomes visible until Commit; Rollback keeps the previous snapshot.
type SnapshotWriter interface {
	InsertAuthoritative(ctx context.Context, users ...domain.AuthoritativeUser) error
	InsertSecondary(ctx context.Context, users ...domain.SecondaryUser) error

	// Rows returns how many rows have been inserted so far.
	Rows() int64

	// Commit records the snapshot metadata and makes the new rows visible.
	Commit(ctx context.Context, source string) (domain.Snapshot, error)
	Rollback() error
}

// Staging defines the write side of the staging store
type Staging interface {
	// BeginReplace discards the table's current rows inside a new transaction
	BeginReplace(ctx context.Context, table domain.Table, runID string) (SnapshotWriter, error)
}

// Reconciliation defines the read side used to classify secondary records
type Reconciliation interface {
	// Snapshot returns the metadata of a loaded table or domain.ErrSnapshotMissing
	Snapshot(ctx context.Context, table domain.Table) (domain.Snapshot, error)

	// FindOrphaned returns secondary records whose external id matches no authoritative id
	FindOrphaned(ctx context.Context) ([]domain.Orphaned, error)

	// FindConflicted returns secondary records whose owner exists while another
	// authoritative record shares their username or email
	FindConflicted(ctx context.Context) ([]domain.Conflicted, error)
}
