// Package fs provides file system operations and error definitions.
package fs

import "errors"

// Error definitions for fs package.
var (
	// File lock errors.
	ErrFileLock = errors.New("lock")

	// Path expansion errors.
	ErrHomeDirResolution = errors.New("failed to determine home directory")
)
