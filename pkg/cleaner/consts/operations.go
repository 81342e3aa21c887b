// Package consts provides operation name constants for the hook system.
package consts

// Operation names for the hook system.
const (
	// Inspection operations.
	ListRoots = "ListRoots"
	ScanRoots = "ScanRoots"

	// Cleanup operations.
	Clean            = "Clean"
	RewriteTelemetry = "RewriteTelemetry"
	CleanStore       = "CleanStore"

	// Initialization operations.
	Init = "Init"
)

// AllOperations returns every operation name, for hooks that observe
// the whole surface.
func AllOperations() []string {
	return []string{
		ListRoots,
		ScanRoots,
		Clean,
		RewriteTelemetry,
		CleanStore,
		Init,
	}
}
