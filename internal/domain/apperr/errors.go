// Package apperr defines the error taxonomy shared by every layer. The
// infrastructure layer translates storage-engine codes into these sentinels at
// the boundary, so the application and HTTP layers only ever use errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a user or sub-record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update collides with a
	// uniqueness constraint (username, email, or an existing sub-record row).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrIdentifierExhausted is returned when the identifier generator cannot
	// find a free value within its bounded attempts. Fatal for the
	// enclosing write.
	ErrIdentifierExhausted = errors.New("identifier space exhausted")

	// ErrInvalidInput is returned when a write payload fails semantic
	// validation (missing username/email, unrecognized enumeration value).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCriteria is returned when search criteria carry an
	// unrecognized enumeration value. Distinct from an empty result set.
	ErrInvalidCriteria = errors.New("invalid search criteria")

	// ErrEmptyPatch is returned when a partial update contains no updatable
	// fields after whitelist filtering.
	ErrEmptyPatch = errors.New("empty patch")

	// ErrPoolExhausted is returned when no pooled session frees up within the
	// configured acquire timeout.
	ErrPoolExhausted = errors.New("connection pool exhausted")

	// ErrStorage wraps any storage failure that has no more specific kind
	// (I/O, timeouts, malformed connections).
	ErrStorage = errors.New("storage failure")
)
