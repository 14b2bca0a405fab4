// Package report renders reconciliation findings for operators.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/osse101/userreconcile/internal/domain"
)

// WriteReview writes every finding as a CSV row under a header of
// domain.ReconciledRecordFields. Nothing is filtered.
func WriteReview(w io.Writer, findings []domain.Finding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.ReconciledRecordFields); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteReview, err)
	}
	for _, f := range findings {
		if err := cw.Write(f.Fields()); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToWriteReview, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteReview, err)
	}
	return nil
}
