package fs

import (
	"os"
	"path/filepath"
)

// IsDirectoryWritable checks if a directory is writable.
func (f *realFS) IsDirectoryWritable(path string) (bool, error) {
	// Try to create a temporary file to test write permissions
	testFile := filepath.Join(path, ".vsweep_write_check")
	file, err := os.Create(testFile)
	if err != nil {
		if os.IsPermission(err) {
			return false, nil
		}
		return false, err
	}
	// Clean up test file
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			_ = closeErr
		}
		if removeErr := os.Remove(testFile); removeErr != nil {
			_ = removeErr
		}
	}()
	return true, nil
}
