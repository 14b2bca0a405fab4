package loader

// Defaults
const (
	DefaultBatchSize     = 10000
	DefaultProgressEvery = 1000
)

// Error Messages
const (
	ErrMsgLoadFailed = "failed to load snapshot"
)

// Log Messages
const (
	LogMsgLoadStarted    = "Beginning to load snapshot"
	LogMsgRowsLoaded     = "Loaded rows"
	LogMsgLoadFinished   = "Done loading snapshot"
	LogMsgLoadRolledBack = "Load aborted, previous snapshot kept"
	LogMsgRollbackFailed = "Failed to roll back staged table"
)
