package reconcile

// Sanity bounds on |authoritative| / |secondary|, both exclusive
const (
	MinSnapshotRatio = 0.75
	MaxSnapshotRatio = 1.33
)

// Log Messages
const (
	LogMsgSanityPassed  = "Sanity check passed"
	LogMsgSanityFailed  = "Sanity check failed"
	LogMsgLoadOrder     = "Secondary snapshot was loaded before the authoritative one; users created in between will be reported as orphaned"
	LogMsgStaleSnapshot = "Snapshot is older than the configured maximum age"
	LogMsgFindingsFound = "Reconciliation finished"
)
