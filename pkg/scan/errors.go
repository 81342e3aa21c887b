package scan

import "errors"

// ErrRootWalk is returned when an environment root cannot be walked at
// all. Individual unreadable entries inside a walkable root are
// skipped instead.
var ErrRootWalk = errors.New("failed to walk environment root")
