package guard

import "errors"

// Validation errors.
var (
	// ErrPathOutsideRoot is returned when the canonicalized path is not
	// a descendant of the canonicalized declared root.
	ErrPathOutsideRoot = errors.New("path is outside the declared root")

	// ErrProtectedPath is returned when the path equals or contains a
	// deny-listed system path.
	ErrProtectedPath = errors.New("path is protected")

	// ErrPreservedPath is returned when the path matches a
	// preservation pattern.
	ErrPreservedPath = errors.New("path matches a preservation pattern")
)
