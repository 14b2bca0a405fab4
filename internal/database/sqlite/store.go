// Package sqlite implements the staging store on an embedded SQLite file.
//
// The store holds exactly one snapshot of each source table plus a metadata
// record per snapshot and an audit trail of invocations. It is opened once
// per process and used from a single goroutine; concurrent invocations
// against the same file are not coordinated.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/osse101/userreconcile/internal/database/sqlite/generated"
	"github.com/osse101/userreconcile/internal/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is the staging database.
type Store struct {
	db  *sql.DB
	q   *generated.Queries
	now func() time.Time
}

// Open opens (creating if needed) the staging database at path and applies
// pending migrations. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(DriverName, path+"?"+BusyTimeoutPragma)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenStaging, err)
	}

	// One connection: an in-memory database lives and dies with it, and a
	// file database only ever has one writer anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenStaging, err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	return &Store{db: db, q: generated.New(db), now: time.Now}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(MigrationsDialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, MigrationsDir)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Count returns the number of rows currently staged in table.
func (s *Store) Count(ctx context.Context, table domain.Table) (int64, error) {
	var (
		n   int64
		err error
	)
	switch table {
	case domain.TableAuthoritative:
		n, err = s.q.CountAuthoritativeUsers(ctx)
	case domain.TableSecondary:
		n, err = s.q.CountSecondaryUsers(ctx)
	default:
		return 0, unknownTable(table)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCount, err)
	}
	return n, nil
}

// CreateIndexes adds the optional lookup indexes. Safe to run repeatedly.
func (s *Store) CreateIndexes(ctx context.Context) error {
	for _, stmt := range Indexes {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToCreateIndex, err)
		}
	}
	return nil
}
