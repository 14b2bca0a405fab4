// Package source reads user records from the two systems being reconciled.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/osse101/userreconcile/internal/domain"
)

// AuthoritativeSource yields every authoritative user in bounded batches.
type AuthoritativeSource interface {
	StreamUsers(ctx context.Context, batchSize int, fn func([]domain.AuthoritativeUser) error) error
	Describe() string
}

// identifierPattern accepts a table name, optionally schema qualified.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLAuthoritative reads the user table of a relational database.
type SQLAuthoritative struct {
	db    *sql.DB
	table string
	desc  string
}

// NewSQLAuthoritative returns a source over table. The table name is
// interpolated into the query so it must be a plain identifier.
func NewSQLAuthoritative(db *sql.DB, table, desc string) (*SQLAuthoritative, error) {
	if table == "" {
		table = DefaultAuthoritativeTable
	}
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("%w: table %q", domain.ErrInvalidIdentifier, table)
	}
	return &SQLAuthoritative{db: db, table: table, desc: desc}, nil
}

func (s *SQLAuthoritative) Describe() string {
	return s.desc
}

// StreamUsers runs one query and walks its cursor, calling fn every batchSize
// rows and once more for the remainder. Rows are never all held in memory.
func (s *SQLAuthoritative) StreamUsers(ctx context.Context, batchSize int, fn func([]domain.AuthoritativeUser) error) error {
	if batchSize <= 0 {
		return fmt.Errorf("%s: %d", ErrMsgInvalidBatchSize, batchSize)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, username, email FROM "+s.table)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToQueryUsers, err)
	}
	defer rows.Close()

	batch := make([]domain.AuthoritativeUser, 0, batchSize)
	for rows.Next() {
		// NULL columns scan to nil and stay NULL in staging.
		var u domain.AuthoritativeUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToScanUser, err)
		}
		batch = append(batch, u)

		if len(batch) == batchSize {
			if err := fn(batch); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgCallbackFailed, err)
			}
			batch = make([]domain.AuthoritativeUser, 0, batchSize)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToQueryUsers, err)
	}

	if len(batch) > 0 {
		if err := fn(batch); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgCallbackFailed, err)
		}
	}
	return nil
}
