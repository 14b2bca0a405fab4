package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/osse101/userreconcile/internal/domain"
)

// Recorder holds the collectors of one invocation on a private registry. The
// process is short lived, so instead of being scraped the registry is written
// once to a node exporter textfile.
type Recorder struct {
	registry *prometheus.Registry

	RowsLoaded   *prometheus.CounterVec
	LoadDuration *prometheus.HistogramVec
	SnapshotRows *prometheus.GaugeVec
	LoadsFailed  *prometheus.CounterVec

	Findings          *prometheus.CounterVec
	DirectivesEmitted prometheus.Counter
	RecordsSkipped    prometheus.Counter
	SanityFailures    prometheus.Counter

	LastRun *prometheus.GaugeVec
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,

		RowsLoaded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricNameRowsLoaded,
				Help:      HelpTextRowsLoaded,
			},
			[]string{LabelTable},
		),
		LoadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      MetricNameLoadDuration,
				Help:      HelpTextLoadDuration,
				Buckets:   LoadDurationBuckets,
			},
			[]string{LabelTable},
		),
		SnapshotRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      MetricNameSnapshotRows,
				Help:      HelpTextSnapshotRows,
			},
			[]string{LabelTable},
		),
		LoadsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricNameLoadsFailed,
				Help:      HelpTextLoadsFailed,
			},
			[]string{LabelTable},
		),

		Findings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricNameFindings,
				Help:      HelpTextFindings,
			},
			[]string{LabelKind},
		),
		DirectivesEmitted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricNameDirectivesEmitted,
				Help:      HelpTextDirectivesEmitted,
			},
		),
		RecordsSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricNameRecordsSkipped,
				Help:      HelpTextRecordsSkipped,
			},
		),
		SanityFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricNameSanityFailures,
				Help:      HelpTextSanityFailures,
			},
		),

		LastRun: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      MetricNameLastRun,
				Help:      HelpTextLastRun,
			},
			[]string{LabelCommand, LabelOutcome},
		),
	}
}

// SnapshotCommitted records a successful table replacement.
func (r *Recorder) SnapshotCommitted(snap domain.Snapshot, took time.Duration) {
	table := string(snap.Table)
	r.RowsLoaded.WithLabelValues(table).Add(float64(snap.RowCount))
	r.LoadDuration.WithLabelValues(table).Observe(took.Seconds())
	r.SnapshotRows.WithLabelValues(table).Set(float64(snap.RowCount))
}

// LoadFailed records a load that was rolled back.
func (r *Recorder) LoadFailed(table domain.Table) {
	r.LoadsFailed.WithLabelValues(string(table)).Inc()
}

// FindingsFound adds n findings of the given kind.
func (r *Recorder) FindingsFound(kind domain.FindingKind, n int) {
	r.Findings.WithLabelValues(string(kind)).Add(float64(n))
}

// RunFinished stamps the end of an invocation.
func (r *Recorder) RunFinished(command, outcome string, at time.Time) {
	r.LastRun.WithLabelValues(command, outcome).Set(float64(at.Unix()))
}

// WriteTextfile atomically writes every collected metric to path in the
// Prometheus text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
