package sheetpos

import "errors"

// Sentinel errors returned by store operations. Callers discriminate with
// errors.Is; everything else is a wrapped transport or configuration error.
var (
	// ErrNotFound means a key lookup matched no row.
	ErrNotFound = errors.New("not found")

	// ErrConflict means an insert or rename collides with an existing key.
	ErrConflict = errors.New("key already exists")

	// ErrReadOnly means the backend was opened without elevated credentials
	// and a mutating operation was refused before any I/O.
	ErrReadOnly = errors.New("read-only backend: elevated credentials required")

	// ErrNotConfigured means required configuration is missing. The store
	// stays unusable for the process lifetime until reconstructed.
	ErrNotConfigured = errors.New("store not configured")

	// ErrEmptyKey means an identifying field required for a lookup or a
	// uniqueness check is empty.
	ErrEmptyKey = errors.New("empty key field")
)

// isNotFound reports whether err wraps ErrNotFound.
func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
