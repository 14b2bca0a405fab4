package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/osse101/userreconcile/internal/database/sqlite/generated"
	"github.com/osse101/userreconcile/internal/domain"
)

// LogRun stores one finished invocation in the audit trail
func (s *Store) LogRun(ctx context.Context, run domain.RunRecord) error {
	var details sql.NullString
	if run.Details != nil {
		b, err := json.Marshal(run.Details)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToLogRun, err)
		}
		details = sql.NullString{String: string(b), Valid: true}
	}

	err := s.q.InsertRun(ctx, generated.InsertRunParams{
		RunID:      run.RunID,
		Command:    run.Command,
		Outcome:    run.Outcome,
		Details:    details,
		StartedAt:  formatTime(run.StartedAt),
		FinishedAt: formatTime(run.FinishedAt),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogRun, err)
	}
	return nil
}

// RecentRuns retrieves up to limit runs, newest first
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentRuns
	}

	rows, err := s.q.ListRecentRuns(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadRuns, err)
	}

	runs := make([]domain.RunRecord, 0, len(rows))
	for _, row := range rows {
		run := domain.RunRecord{
			ID:      row.ID,
			RunID:   row.RunID,
			Command: row.Command,
			Outcome: row.Outcome,
		}
		if row.Details.Valid && row.Details.String != "" {
			if err := json.Unmarshal([]byte(row.Details.String), &run.Details); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadRuns, err)
			}
		}
		if run.StartedAt, err = parseTime(row.StartedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadRuns, err)
		}
		if run.FinishedAt, err = parseTime(row.FinishedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToReadRuns, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
