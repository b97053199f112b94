package vectorstore

import "errors"

// Common error kinds surfaced by Store adapters. Adapters wrap these with
// fmt.Errorf("%w: ...") so callers can branch with errors.Is and choose
// transport status codes without parsing messages.
var (
	// ErrConfiguration is returned when connection parameters are missing or
	// invalid. It is raised before any network call and is fatal at startup.
	ErrConfiguration = errors.New("invalid store configuration")

	// ErrConnection is returned on network or authentication failure while
	// establishing or using a session. Retryable by the caller; the store
	// never retries an individual operation itself.
	ErrConnection = errors.New("store connection failed")

	// ErrSchema is returned when provisioning fails for any reason other than
	// the table already existing.
	ErrSchema = errors.New("schema provisioning failed")

	// ErrValidation is returned for malformed caller input, e.g. a vector of
	// the wrong dimension. Always the caller's fault, never retried.
	ErrValidation = errors.New("invalid input")

	// ErrQuery is returned when a search, upsert, or delete fails at the
	// backend. May be transient.
	ErrQuery = errors.New("query execution failed")

	// ErrResourceExhausted is returned when waiting for a pooled session
	// exceeded the configured timeout.
	ErrResourceExhausted = errors.New("connection pool exhausted")

	// ErrClosed is returned when an operation is issued after Close. This is
	// a fatal usage error, not a retryable condition.
	ErrClosed = errors.New("store is closed")

	// ErrNotConfigured is returned when no backing store is wired at all.
	ErrNotConfigured = errors.New("vector store is not configured")
)
