package errs

import "errors"

// Error taxonomy shared by the terminal layers
var (
	// Local validation: caught before any backend call
	ErrDomainValidation = errors.New("domain validation error")

	// Checkout already in flight or not in the expected state
	ErrCheckoutConflict = errors.New("checkout conflict")

	// Lookup misses against the catalog cache
	ErrNotFound = errors.New("not found")

	// Backend answered with a non-success status
	ErrSyncRejected = errors.New("backend rejected request")

	// Backend could not be reached or answered garbage
	ErrTransport = errors.New("backend unreachable")
)
