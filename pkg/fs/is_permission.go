package fs

import "os"

// IsPermission checks if an error indicates an OS-level permission denial.
func (f *realFS) IsPermission(err error) bool {
	return os.IsPermission(err)
}
