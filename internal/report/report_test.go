package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/userreconcile/internal/domain"
	"github.com/osse101/userreconcile/internal/logger"
	"github.com/osse101/userreconcile/internal/metrics"
)

var (
	orphanedBob = domain.Orphaned{
		Secondary: domain.SecondaryUser{ExternalID: 2, Username: strPtr("bob"), Email: strPtr("b@x.com")},
	}
	conflictedSafe = domain.Conflicted{
		Secondary:     domain.SecondaryUser{ExternalID: 4, Username: strPtr("dave"), Email: strPtr("c@x.com")},
		Authoritative: domain.AuthoritativeUser{ID: 3, Username: strPtr("carol"), Email: strPtr("c@x.com")},
	}
	conflictedActive = domain.Conflicted{
		Secondary:     domain.SecondaryUser{ExternalID: 1, Username: strPtr("bob"), Email: strPtr("a@x.com"), ActivityCount: 3},
		Authoritative: domain.AuthoritativeUser{ID: 2, Username: strPtr("bob"), Email: strPtr("b@x.com")},
	}
)

func TestWriteReview(t *testing.T) {
	var buf bytes.Buffer

	err := WriteReview(&buf, []domain.Finding{orphanedBob, conflictedActive})

	require.NoError(t, err)
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, domain.ReconciledRecordFields, records[0])
	assert.Equal(t, []string{"2", "bob", "b@x.com", "0", "", "", ""}, records[1])
	assert.Equal(t, []string{"1", "bob", "a@x.com", "3", "2", "bob", "b@x.com"}, records[2])
}

func TestWriteReview_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteReview(&buf, nil))

	assert.Equal(t, strings.Join(domain.ReconciledRecordFields, ",")+"\n", buf.String())
}

func TestWriteReview_QuotesAwkwardValues(t *testing.T) {
	var buf bytes.Buffer
	f := domain.Orphaned{Secondary: domain.SecondaryUser{ExternalID: 5, Username: strPtr("a,b"), Email: strPtr("line\nbreak")}}

	require.NoError(t, WriteReview(&buf, []domain.Finding{f}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "a,b", records[1][1])
	assert.Equal(t, "line\nbreak", records[1][2])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteReview_WriterError(t *testing.T) {
	err := WriteReview(failingWriter{}, []domain.Finding{orphanedBob})

	assert.ErrorContains(t, err, ErrMsgFailedToWriteReview)
}

func TestRemediator_Write(t *testing.T) {
	var (
		out  bytes.Buffer
		logs bytes.Buffer
	)
	rec := metrics.New()
	r := NewRemediator("", slog.New(slog.NewTextHandler(&logs, nil)), rec)

	sum, err := r.Write(&out, []domain.Finding{orphanedBob, conflictedActive, conflictedSafe})

	require.NoError(t, err)
	assert.Equal(t, Summary{Emitted: 2, Skipped: 1}, sum)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], `db.users.remove({_id: "2"}) // orphaned{`), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `db.users.remove({_id: "4"}) // conflicted{`), lines[1])
	assert.NotContains(t, out.String(), `_id: "1"`, "active records are never removed")

	assert.Contains(t, logs.String(), LogMsgSkippingRecord)
	assert.Contains(t, logs.String(), "secondary_id=1")
	assert.Equal(t, float64(2), testutil.ToFloat64(rec.DirectivesEmitted))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.RecordsSkipped))
}

func TestRemediator_EndToEnd(t *testing.T) {
	t.Run("orphaned record yields one directive", func(t *testing.T) {
		var out bytes.Buffer
		r := NewRemediator("users", logger.Discard(), metrics.New())

		sum, err := r.Write(&out, []domain.Finding{orphanedBob})

		require.NoError(t, err)
		assert.Equal(t, 1, sum.Emitted)
		assert.Equal(t, r.Directive(orphanedBob)+"\n", out.String())
	})

	t.Run("active conflicted record yields only a warning", func(t *testing.T) {
		var out bytes.Buffer
		r := NewRemediator("users", logger.Discard(), metrics.New())
		f := domain.Conflicted{
			Secondary:     domain.SecondaryUser{ExternalID: 1, Username: strPtr("bob"), Email: strPtr("a@x.com"), ActivityCount: 5},
			Authoritative: domain.AuthoritativeUser{ID: 2, Username: strPtr("bob"), Email: strPtr("b@x.com")},
		}

		sum, err := r.Write(&out, []domain.Finding{f})

		require.NoError(t, err)
		assert.Equal(t, Summary{Skipped: 1}, sum)
		assert.Empty(t, out.String())
	})
}

func TestRemediator_CustomCollection(t *testing.T) {
	r := NewRemediator("forum_users", logger.Discard(), metrics.New())

	assert.True(t, strings.HasPrefix(r.Directive(orphanedBob), `db.forum_users.remove({_id: "2"})`))
}

func TestRemediator_WriterError(t *testing.T) {
	r := NewRemediator("", logger.Discard(), metrics.New())

	_, err := r.Write(failingWriter{}, []domain.Finding{orphanedBob})

	assert.ErrorContains(t, err, ErrMsgFailedToWriteDirective)
}

func strPtr(s string) *string {
	return &s
}
