package preserve

import "errors"

// ErrInvalidPattern is returned when a preservation pattern is blank
// or not a valid glob.
var ErrInvalidPattern = errors.New("invalid preservation pattern")
