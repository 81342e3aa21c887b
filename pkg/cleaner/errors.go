package cleaner

import "errors"

// Initialization errors.
var (
	// ErrNilConfig is returned when a Cleaner is created without a
	// configuration.
	ErrNilConfig = errors.New("configuration is required")
	// ErrAlreadyInitialized is returned when init finds an existing
	// configuration and force is not set.
	ErrAlreadyInitialized = errors.New("configuration already initialized")
	// ErrNoConfigManager is returned when an operation needs the
	// configuration manager but none was provided.
	ErrNoConfigManager = errors.New("no configuration manager available")
)

// Cleanup errors.
var (
	// ErrPartialFailure is returned by callers that map a partially
	// failed run to an error value.
	ErrPartialFailure = errors.New("cleanup completed with failures")
	// ErrNoEditorsConfigured is returned when CleanAll runs with an
	// empty editor list.
	ErrNoEditorsConfigured = errors.New("no editors configured")
	// ErrStoreCleanupFailed is returned when at least one state
	// database could not be cleaned.
	ErrStoreCleanupFailed = errors.New("state database cleanup failed")
)
