package telemetry

import "errors"

// Telemetry configuration errors.
var (
	// ErrConfigNotFound is returned when the editor's configuration
	// file does not exist.
	ErrConfigNotFound = errors.New("telemetry configuration file not found")

	// ErrConfigParse is returned when the configuration file is not
	// valid JSON.
	ErrConfigParse = errors.New("failed to parse telemetry configuration")

	// ErrIDGeneration is returned when no random identifier could be
	// generated.
	ErrIDGeneration = errors.New("failed to generate identifier")
)
