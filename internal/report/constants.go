package report

// DefaultCollection is the collection named in removal directives
const DefaultCollection = "users"

// Error Messages
const (
	ErrMsgFailedToWriteReview    = "failed to write review"
	ErrMsgFailedToWriteDirective = "failed to write directive"
)

// Log Messages
const (
	LogMsgSkippingRecord = "Skipping record due to previous activity, resolve manually"
	LogMsgRemediation    = "Remediation directives written"
)
