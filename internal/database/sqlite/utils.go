package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/osse101/userreconcile/internal/domain"
)

func unknownTable(table domain.Table) error {
	return fmt.Errorf("%s: %q", ErrMsgUnknownTable, table)
}

func ptrToText(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func textToPtr(t sql.NullString) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}
