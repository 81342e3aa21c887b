package store

import "errors"

// State database errors.
var (
	// ErrStoreNotFound is returned when the database file does not
	// exist.
	ErrStoreNotFound = errors.New("state database not found")

	// ErrStoreUnavailable is returned when the database exists but
	// cannot be used, typically because it is locked by a running
	// editor or corrupt.
	ErrStoreUnavailable = errors.New("state database unavailable")

	// ErrNoPatterns is returned when every supplied key pattern is
	// blank.
	ErrNoPatterns = errors.New("no key patterns provided")
)
