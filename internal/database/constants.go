package database

// Authoritative drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	pgxDriverName          = "pgx"
	DefaultPostgresSSLMode = "prefer"
)

// Error Messages - Database Operations
const (
	ErrMsgInvalidTarget        = "invalid connection target"
	ErrMsgUnsupportedDriver    = "unsupported authoritative driver"
	ErrMsgFailedToOpenDatabase = "failed to open database"
	ErrMsgFailedToPingDatabase = "failed to ping database"
)

// Log Messages
const (
	LogMsgConnectedToAuthoritative = "Connected to authoritative database"
	LogMsgConnectedToSecondary     = "Connected to secondary database"
)
