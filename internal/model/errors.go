package model

import "errors"

// Common errors used across the application
var (
	// ErrStoreUnavailable is returned by every operation when no store
	// connection has been configured.
	ErrStoreUnavailable = errors.New("no store connection configured")

	// Lookup errors
	ErrAccountNotFound = errors.New("account not found")
	ErrEntityNotFound  = errors.New("entity not found")

	// Validation errors
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrUnknownCollection = errors.New("unknown entity collection")

	// ErrStoreFailed wraps failures from the backing store. The repository
	// layer does not retry; callers see the underlying cause via Unwrap.
	ErrStoreFailed = errors.New("store operation failed")
)
