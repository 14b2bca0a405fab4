package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/osse101/userreconcile/internal/domain"
	"github.com/osse101/userreconcile/internal/metrics"
)

// Summary counts what a remediation pass did with its findings
type Summary struct {
	Emitted int
	Skipped int
}

// Remediator turns findings into document-store removal directives. Records
// with any recorded activity are never removed automatically.
type Remediator struct {
	collection string
	log        *slog.Logger
	metrics    *metrics.Recorder
}

// NewRemediator creates a remediator targeting collection, or
// DefaultCollection when empty
func NewRemediator(collection string, log *slog.Logger, rec *metrics.Recorder) *Remediator {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Remediator{collection: collection, log: log, metrics: rec}
}

// Write emits one directive line per safe finding and a warning log entry
// per unsafe one.
func (r *Remediator) Write(w io.Writer, findings []domain.Finding) (Summary, error) {
	var sum Summary
	for _, f := range findings {
		if !f.Safe() {
			r.log.Warn(LogMsgSkippingRecord, "record", f.String())
			r.metrics.RecordsSkipped.Inc()
			sum.Skipped++
			continue
		}

		if _, err := io.WriteString(w, r.Directive(f)+"\n"); err != nil {
			return sum, fmt.Errorf("%s: %w", ErrMsgFailedToWriteDirective, err)
		}
		r.metrics.DirectivesEmitted.Inc()
		sum.Emitted++
	}

	r.log.Info(LogMsgRemediation, "emitted", sum.Emitted, "skipped", sum.Skipped)
	return sum, nil
}

// Directive renders the removal statement for f with its audit comment
func (r *Remediator) Directive(f domain.Finding) string {
	return fmt.Sprintf(`db.%s.remove({_id: "%d"}) // %s`, r.collection, f.SecondaryUser().ExternalID, f)
}
