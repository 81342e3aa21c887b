package editor

import "errors"

var (
	// ErrUnsupportedEditor is returned when an editor variant is not supported.
	ErrUnsupportedEditor = errors.New("unsupported editor")

	// ErrUnsupportedOS is returned when an operating system family is not supported.
	ErrUnsupportedOS = errors.New("unsupported operating system")
)
