package sqlite

import (
	"context"
	"fmt"

	"github.com/osse101/userreconcile/internal/domain"
)

// FindOrphaned returns secondary records whose external id matches no
// authoritative id.
func (s *Store) FindOrphaned(ctx context.Context) ([]domain.Orphaned, error) {
	rows, err := s.q.FindOrphaned(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryOrphaned, err)
	}

	found := make([]domain.Orphaned, 0, len(rows))
	for _, row := range rows {
		found = append(found, domain.Orphaned{Secondary: domain.SecondaryUser{
			ExternalID:    row.ExternalID,
			Username:      textToPtr(row.Username),
			Email:         textToPtr(row.Email),
			ActivityCount: row.ActivityCount,
		}})
	}
	return found, nil
}

// FindConflicted returns one row per (secondary, colliding authoritative)
// pair. The owner of the secondary record must exist; whether the colliding
// authoritative record is itself claimed by another secondary record is not
// considered. Missing usernames and emails never collide.
func (s *Store) FindConflicted(ctx context.Context) ([]domain.Conflicted, error) {
	rows, err := s.q.FindConflicted(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryConflicted, err)
	}

	found := make([]domain.Conflicted, 0, len(rows))
	for _, row := range rows {
		found = append(found, domain.Conflicted{
			Secondary: domain.SecondaryUser{
				ExternalID:    row.ExternalID,
				Username:      textToPtr(row.Username),
				Email:         textToPtr(row.Email),
				ActivityCount: row.ActivityCount,
			},
			Authoritative: domain.AuthoritativeUser{
				ID:       row.AuthoritativeID,
				Username: textToPtr(row.AuthoritativeUsername),
				Email:    textToPtr(row.AuthoritativeEmail),
			},
		})
	}
	return found, nil
}
