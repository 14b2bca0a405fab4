package source

// Defaults
const (
	DefaultAuthoritativeTable  = "auth_user"
	DefaultSecondaryCollection = "users"
	DefaultBatchSize           = 10000
)

// Secondary document fields
const (
	FieldExternalID = "external_id"
	FieldUsername   = "username"
	FieldEmail      = "email"
	FieldReadStates = "read_states"
)

// Error Messages - Source Operations
const (
	ErrMsgFailedToQueryUsers = "failed to query source users"
	ErrMsgFailedToScanUser   = "failed to read source user"
	ErrMsgFailedToDecodeUser = "failed to decode source document"
	ErrMsgInvalidReadStates  = "read_states is not an array"
	ErrMsgInvalidBatchSize   = "batch size must be positive"
	ErrMsgCallbackFailed     = "failed to handle source users"
)
