package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric so textfile output never collides with
// other collectors on the same node exporter.
const Namespace = "userreconcile"

// Load metric names
const (
	MetricNameRowsLoaded   = "rows_loaded_total"
	MetricNameLoadDuration = "load_duration_seconds"
	MetricNameSnapshotRows = "snapshot_rows"
	MetricNameLoadsFailed  = "loads_failed_total"
)

// Reconciliation metric names
const (
	MetricNameFindings          = "findings_total"
	MetricNameDirectivesEmitted = "directives_emitted_total"
	MetricNameRecordsSkipped    = "records_skipped_total"
	MetricNameSanityFailures    = "sanity_check_failures_total"
)

// Run metric names
const (
	MetricNameLastRun = "last_run_timestamp_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// Load metric help text
const (
	HelpTextRowsLoaded   = "Total number of rows written to a staged table"
	HelpTextLoadDuration = "Time taken to replace a staged table in seconds"
	HelpTextSnapshotRows = "Row count of the most recently committed snapshot"
	HelpTextLoadsFailed  = "Total number of loads that were rolled back"
)

// Reconciliation metric help text
const (
	HelpTextFindings          = "Total number of secondary records classified by reconciliation"
	HelpTextDirectivesEmitted = "Total number of removal directives emitted"
	HelpTextRecordsSkipped    = "Total number of records withheld from removal due to previous activity"
	HelpTextSanityFailures    = "Total number of reconciliations refused by the sanity check"
)

// Run metric help text
const (
	HelpTextLastRun = "Unix time of the last finished invocation"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelTable   = "table"
	LabelKind    = "kind"
	LabelCommand = "command"
	LabelOutcome = "outcome"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// LoadDurationBuckets spans small test snapshots (seconds) up to full
// production exports (about an hour).
var LoadDurationBuckets = []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200, 2400, 3600}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgMetricsWritten = "Metrics written"
)
