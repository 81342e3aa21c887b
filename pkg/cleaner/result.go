package cleaner

import (
	"github.com/vsweep/vsweep/pkg/scan"
	"github.com/vsweep/vsweep/pkg/store"
	"github.com/vsweep/vsweep/pkg/telemetry"
)

// Phase describes where a cleanup run is in its lifecycle.
type Phase string

// Cleanup run phases.
const (
	PhaseIdle            Phase = "Idle"
	PhaseScanning        Phase = "Scanning"
	PhaseValidating      Phase = "Validating"
	PhaseApplying        Phase = "Applying"
	PhaseCompleted       Phase = "Completed"
	PhasePartiallyFailed Phase = "PartiallyFailed"
)

// ItemOutcome is the result of handling a single scanned file.
type ItemOutcome string

// Per-item outcomes.
const (
	OutcomeRemoved   ItemOutcome = "removed"
	OutcomePreserved ItemOutcome = "preserved"
	OutcomeSkipped   ItemOutcome = "skipped"
	OutcomeFailed    ItemOutcome = "failed"
)

// ItemStatus records what happened to one scanned file.
type ItemStatus struct {
	Path    string
	Kind    scan.Kind
	Outcome ItemOutcome
	Detail  string
}

// CleanupResult aggregates one cleanup run. The counters satisfy
// TotalRemoved + PreservedCount + SkippedCount + FailedCount ==
// TotalScanned, in dry-run mode as well.
type CleanupResult struct {
	Editor         string
	Phase          Phase
	DryRun         bool
	TotalScanned   int
	TotalRemoved   int
	PreservedCount int
	SkippedCount   int
	FailedCount    int
	BytesFreed     int64
	Items          []ItemStatus

	// Telemetry is set when the run rewrote telemetry identifiers.
	Telemetry *telemetry.Rewrite
	// StoreResults holds the outcome per cleaned state database.
	StoreResults []store.CleanResult
	// StoreRows is the total number of deleted database rows.
	StoreRows int64
	// AuxErrors records failures outside the per-file counters, such
	// as an unreadable root or a locked state database.
	AuxErrors []string
}

// CleanParams configures a Clean, CleanAll or CleanPluginHome call.
type CleanParams struct {
	// Editor selects the variant to clean. Ignored by CleanAll and
	// CleanPluginHome.
	Editor string

	// DryRun computes the full result without mutating anything.
	DryRun bool

	// Preserve adds preservation patterns on top of the configured
	// ones.
	Preserve []string

	// Kinds restricts which file kinds are removed. Empty means
	// DefaultSweepKinds.
	Kinds []scan.Kind

	// StorePatterns overrides the configured store key patterns.
	StorePatterns []string

	// KeepTelemetry skips the telemetry identifier rewrite.
	KeepTelemetry bool

	// KeepStore skips state database cleaning.
	KeepStore bool
}

// DefaultSweepKinds returns the kinds Clean removes when the caller
// does not restrict them. Configuration files are excluded: the
// telemetry and store operations mutate those surgically instead of
// deleting them.
func DefaultSweepKinds() []scan.Kind {
	return []scan.Kind{
		scan.KindCache,
		scan.KindLog,
		scan.KindTempFile,
		scan.KindWorkspaceStorage,
		scan.KindChatHistory,
		scan.KindExtensionCache,
		scan.KindUnknown,
	}
}

// AllKinds returns every file kind, including configuration files.
// The plugin home sweep uses this: there the preservation set alone
// decides what survives.
func AllKinds() []scan.Kind {
	return append(DefaultSweepKinds(), scan.KindConfig)
}

func kindSet(kinds []scan.Kind) map[scan.Kind]struct{} {
	if len(kinds) == 0 {
		kinds = DefaultSweepKinds()
	}
	set := make(map[scan.Kind]struct{}, len(kinds))
	for _, kind := range kinds {
		set[kind] = struct{}{}
	}
	return set
}

func (r *CleanupResult) recordItem(item ItemStatus) {
	r.Items = append(r.Items, item)
	switch item.Outcome {
	case OutcomeRemoved:
		r.TotalRemoved++
	case OutcomePreserved:
		r.PreservedCount++
	case OutcomeSkipped:
		r.SkippedCount++
	case OutcomeFailed:
		r.FailedCount++
	}
}

func (r *CleanupResult) finishPhase() {
	if r.FailedCount > 0 || len(r.AuxErrors) > 0 {
		r.Phase = PhasePartiallyFailed
		return
	}
	r.Phase = PhaseCompleted
}
