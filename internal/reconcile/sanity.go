package reconcile

import (
	"fmt"

	"github.com/osse101/userreconcile/internal/domain"
)

// CheckSanity refuses to reconcile snapshots whose sizes differ so much that
// one of them is probably incomplete or from the wrong system.
func CheckSanity(authoritative, secondary int64) error {
	if authoritative == 0 || secondary == 0 {
		return fmt.Errorf("%w: %w (authoritative=%d secondary=%d)",
			domain.ErrSanityCheckFailed, domain.ErrEmptySnapshot, authoritative, secondary)
	}

	ratio := float64(authoritative) / float64(secondary)
	if ratio <= MinSnapshotRatio || ratio >= MaxSnapshotRatio {
		return fmt.Errorf("%w: %w (authoritative=%d secondary=%d ratio=%.3f, want %.2f < ratio < %.2f)",
			domain.ErrSanityCheckFailed, domain.ErrRatioOutOfBounds, authoritative, secondary, ratio,
			MinSnapshotRatio, MaxSnapshotRatio)
	}
	return nil
}
