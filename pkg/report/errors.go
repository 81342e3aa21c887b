// Package report provides history management functionality and error definitions.
package report

import "errors"

// Error definitions for report package.
var (
	// History file errors.
	ErrConfigurationNotInitialized = errors.New("configuration is not initialized")
	ErrHistoryFileNotConfigured    = errors.New("history file path is not configured")
	ErrHistoryFileParse            = errors.New("failed to parse history file")

	// Query errors.
	ErrNoRuns = errors.New("no runs recorded")
)
