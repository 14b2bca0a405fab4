package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/userreconcile/internal/domain"
)

// MockStaging is a mock implementation of the Staging interface
type MockStaging struct {
	mock.Mock
}

func (m *MockStaging) BeginReplace(ctx context.Context, table domain.Table, runID string) (SnapshotWriter, error) {
	args := m.Called(ctx, table, runID)
	if w, ok := args.Get(0).(SnapshotWriter); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSnapshotWriter is a mock implementation of the SnapshotWriter interface
type MockSnapshotWriter struct {
	mock.Mock
}

func (m *MockSnapshotWriter) InsertAuthoritative(ctx context.Context, users ...domain.AuthoritativeUser) error {
	args := m.Called(ctx, users)
	return args.Error(0)
}

func (m *MockSnapshotWriter) InsertSecondary(ctx context.Context, users ...domain.SecondaryUser) error {
	args := m.Called(ctx, users)
	return args.Error(0)
}

func (m *MockSnapshotWriter) Rows() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockSnapshotWriter) Commit(ctx context.Context, source string) (domain.Snapshot, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotWriter) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockReconciliation is a mock implementation of the Reconciliation interface
type MockReconciliation struct {
	mock.Mock
}

func (m *MockReconciliation) Snapshot(ctx context.Context, table domain.Table) (domain.Snapshot, error) {
	args := m.Called(ctx, table)
	return args.Get(0).(domain.Snapshot), args.Error(1)
}

func (m *MockReconciliation) FindOrphaned(ctx context.Context) ([]domain.Orphaned, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Orphaned), args.Error(1)
}

func (m *MockReconciliation) FindConflicted(ctx context.Context) ([]domain.Conflicted, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Conflicted), args.Error(1)
}

// MockRunLog is a mock implementation of the RunLog interface
type MockRunLog struct {
	mock.Mock
}

func (m *MockRunLog) LogRun(ctx context.Context, run domain.RunRecord) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunLog) RecentRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	args := m.Called(ctx, limit)
	if runs, ok := args.Get(0).([]domain.RunRecord); ok {
		return runs, args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	_ Staging        = (*MockStaging)(nil)
	_ SnapshotWriter = (*MockSnapshotWriter)(nil)
	_ Reconciliation = (*MockReconciliation)(nil)
	_ RunLog         = (*MockRunLog)(nil)
)
