package fs

import "os"

// Lstat returns file information without following symlinks.
func (f *realFS) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}
