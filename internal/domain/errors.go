package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Staging errors
	ErrMsgSnapshotMissing = "snapshot has not been loaded"

	// Sanity errors
	ErrMsgEmptySnapshot     = "snapshot is empty"
	ErrMsgRatioOutOfBounds  = "snapshot sizes are not comparable"
	ErrMsgSanityCheckFailed = "sanity check failed"

	// Source errors
	ErrMsgInvalidExternalID = "invalid external_id"
	ErrMsgInvalidIdentifier = "invalid identifier"

	// Input errors
	ErrMsgUsage = "usage error"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrSnapshotMissing = errors.New(ErrMsgSnapshotMissing)

	ErrEmptySnapshot     = errors.New(ErrMsgEmptySnapshot)
	ErrRatioOutOfBounds  = errors.New(ErrMsgRatioOutOfBounds)
	ErrSanityCheckFailed = errors.New(ErrMsgSanityCheckFailed)

	ErrInvalidExternalID = errors.New(ErrMsgInvalidExternalID)
	ErrInvalidIdentifier = errors.New(ErrMsgInvalidIdentifier)

	ErrUsage = errors.New(ErrMsgUsage)
)
