package sqlite

// Driver and connection settings
const (
	DriverName         = "sqlite"
	MigrationsDialect  = "sqlite3"
	MigrationsDir      = "migrations"
	MemoryPath         = ":memory:"
	BusyTimeoutPragma  = "_pragma=busy_timeout(5000)"
	TimestampLayout    = "2006-01-02T15:04:05.000000000Z07:00"
	DefaultRecentRuns  = 10
	purgeOverwriteSize = 64 * 1024
)

// Error Messages - Staging Operations
const (
	ErrMsgFailedToOpenStaging      = "failed to open staging database"
	ErrMsgFailedToMigrate          = "failed to migrate staging database"
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToClearTable       = "failed to clear staged table"
	ErrMsgFailedToInsertRow        = "failed to insert staged row"
	ErrMsgFailedToWriteSnapshot    = "failed to write snapshot metadata"
	ErrMsgFailedToCommit           = "failed to commit snapshot"
	ErrMsgFailedToReadSnapshot     = "failed to read snapshot metadata"
	ErrMsgFailedToCount            = "failed to count staged rows"
	ErrMsgFailedToQueryOrphaned    = "failed to query orphaned records"
	ErrMsgFailedToQueryConflicted  = "failed to query conflicted records"
	ErrMsgFailedToCreateIndex      = "failed to create index"
	ErrMsgFailedToLogRun           = "failed to log run"
	ErrMsgFailedToReadRuns         = "failed to read run log"
	ErrMsgFailedToPurge            = "failed to purge staging file"
	ErrMsgWrongTable               = "writer is bound to a different table"
	ErrMsgUnknownTable             = "unknown staged table"
)

// Indexes is the optional performance step for large snapshots. None of them
// are unique because the sources do not guarantee uniqueness.
var Indexes = []string{
	`CREATE INDEX IF NOT EXISTS authoritative_user_id ON authoritative_user(id)`,
	`CREATE INDEX IF NOT EXISTS authoritative_user_username ON authoritative_user(username)`,
	`CREATE INDEX IF NOT EXISTS authoritative_user_email ON authoritative_user(email)`,
	`CREATE INDEX IF NOT EXISTS secondary_user_username ON secondary_user(username)`,
	`CREATE INDEX IF NOT EXISTS secondary_user_email ON secondary_user(email)`,
	`CREATE INDEX IF NOT EXISTS secondary_user_external_id ON secondary_user(external_id)`,
}
