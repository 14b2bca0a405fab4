package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/userreconcile/internal/database/sqlite/generated"
	"github.com/osse101/userreconcile/internal/domain"
	"github.com/osse101/userreconcile/internal/repository"
)

// snapshotWriter replaces one staged table inside a single transaction.
type snapshotWriter struct {
	store *Store
	tx    *sql.Tx
	q     *generated.Queries
	table domain.Table
	runID string
	rows  int64
}

// BeginReplace starts a transaction and clears the table. The previous rows
// stay visible to other connections until Commit.
func (s *Store) BeginReplace(ctx context.Context, table domain.Table, runID string) (repository.SnapshotWriter, error) {
	var clear func(*generated.Queries, context.Context) error
	switch table {
	case domain.TableAuthoritative:
		clear = (*generated.Queries).DeleteAuthoritativeUsers
	case domain.TableSecondary:
		clear = (*generated.Queries).DeleteSecondaryUsers
	default:
		return nil, unknownTable(table)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	q := s.q.WithTx(tx)

	if err := clear(q, ctx); err != nil {
		safeRollback(tx)
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToClearTable, err)
	}

	return &snapshotWriter{
		store: s,
		tx:    tx,
		q:     q,
		table: table,
		runID: runID,
	}, nil
}

func (w *snapshotWriter) InsertAuthoritative(ctx context.Context, users ...domain.AuthoritativeUser) error {
	if w.table != domain.TableAuthoritative {
		return fmt.Errorf("%s: %s", ErrMsgWrongTable, w.table)
	}
	for _, u := range users {
		err := w.q.InsertAuthoritativeUser(ctx, generated.InsertAuthoritativeUserParams{
			ID:       u.ID,
			Username: ptrToText(u.Username),
			Email:    ptrToText(u.Email),
		})
		if err != nil {
			return fmt.Errorf("%s (id=%d): %w", ErrMsgFailedToInsertRow, u.ID, err)
		}
		w.rows++
	}
	return nil
}

func (w *snapshotWriter) InsertSecondary(ctx context.Context, users ...domain.SecondaryUser) error {
	if w.table != domain.TableSecondary {
		return fmt.Errorf("%s: %s", ErrMsgWrongTable, w.table)
	}
	for _, u := range users {
		err := w.q.InsertSecondaryUser(ctx, generated.InsertSecondaryUserParams{
			ExternalID:    u.ExternalID,
			Username:      ptrToText(u.Username),
			Email:         ptrToText(u.Email),
			ActivityCount: u.ActivityCount,
		})
		if err != nil {
			return fmt.Errorf("%s (external_id=%d): %w", ErrMsgFailedToInsertRow, u.ExternalID, err)
		}
		w.rows++
	}
	return nil
}

func (w *snapshotWriter) Rows() int64 {
	return w.rows
}

func (w *snapshotWriter) Commit(ctx context.Context, source string) (domain.Snapshot, error) {
	snap := domain.Snapshot{
		Table:    w.table,
		RunID:    w.runID,
		Source:   source,
		RowCount: w.rows,
		LoadedAt: w.store.now().UTC(),
	}

	err := w.q.UpsertSnapshot(ctx, generated.UpsertSnapshotParams{
		TableName: string(snap.Table),
		RunID:     snap.RunID,
		Source:    snap.Source,
		RowCount:  snap.RowCount,
		LoadedAt:  formatTime(snap.LoadedAt),
	})
	if err != nil {
		safeRollback(w.tx)
		return domain.Snapshot{}, fmt.Errorf("%s: %w", ErrMsgFailedToWriteSnapshot, err)
	}

	if err := w.tx.Commit(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return snap, nil
}

func (w *snapshotWriter) Rollback() error {
	if err := w.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// safeRollback rolls back a transaction that is being abandoned on an error path
func safeRollback(tx *sql.Tx) {
	_ = tx.Rollback()
}

// Snapshot returns the metadata for table, or domain.ErrSnapshotMissing if it
// has never been loaded.
func (s *Store) Snapshot(ctx context.Context, table domain.Table) (domain.Snapshot, error) {
	row, err := s.q.GetSnapshot(ctx, string(table))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Snapshot{}, fmt.Errorf("%w: %s", domain.ErrSnapshotMissing, table)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", ErrMsgFailedToReadSnapshot, err)
	}
	return mapSnapshot(row)
}

// Snapshots returns the metadata of every loaded table.
func (s *Store) Snapshots(ctx context.Context) ([]domain.Snapshot, error) {
	rows, err := s.q.ListSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadSnapshot, err)
	}

	snaps := make([]domain.Snapshot, 0, len(rows))
	for _, row := range rows {
		snap, err := mapSnapshot(row)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func mapSnapshot(row generated.StagingSnapshot) (domain.Snapshot, error) {
	loadedAt, err := parseTime(row.LoadedAt)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", ErrMsgFailedToReadSnapshot, err)
	}
	return domain.Snapshot{
		Table:    domain.Table(row.TableName),
		RunID:    row.RunID,
		Source:   row.Source,
		RowCount: row.RowCount,
		LoadedAt: loadedAt,
	}, nil
}
