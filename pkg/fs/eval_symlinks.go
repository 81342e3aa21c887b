package fs

import "path/filepath"

// EvalSymlinks returns the path after resolving all symbolic links.
// The path must exist; callers resolving hypothetical paths should
// resolve the nearest existing ancestor instead.
func (f *realFS) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}
