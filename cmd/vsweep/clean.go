package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsweep/vsweep/pkg/cleaner"
	"github.com/vsweep/vsweep/pkg/telemetry"
)

func createCleanCmd() *cobra.Command {
	var (
		editors       []string
		preserve      []string
		dryRun        bool
		yes           bool
		pluginHome    bool
		keepTelemetry bool
		keepStore     bool
	)

	cleanCmd := &cobra.Command{
		Use:   "clean [--dry-run | --yes]",
		Short: "Remove removable editor state",
		Long: `Remove removable state from the editors' directories: caches, logs,
temporary files, workspace storage, chat history and extension caches.
Unless told otherwise the run also rewrites the telemetry identifiers
in storage.json, deletes matching rows from the state databases, and
sweeps the plugin home alongside the configured editors.

Configuration files and everything matching the preservation patterns
are kept. A live run requires --yes.

Examples:
  vsweep clean --dry-run
  vsweep clean --yes
  vsweep clean --editor vscode --dry-run
  vsweep clean --plugin-home --yes
  vsweep clean --yes --keep-telemetry --keep-store`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !dryRun && !yes {
				return errors.New("a live run removes files, confirm with --yes or preview with --dry-run")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sweeper, err := newCleaner(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			params := cleaner.CleanParams{
				DryRun:        dryRun,
				Preserve:      preserve,
				KeepTelemetry: keepTelemetry,
				KeepStore:     keepStore,
			}

			// --editor narrows the run to the named variants; --plugin-home
			// narrows it to the plugin home. Without either, everything is
			// cleaned.
			includeEditors := len(editors) > 0 || !pluginHome
			includePlugin := pluginHome || len(editors) == 0

			var results []cleaner.CleanupResult
			if includeEditors {
				editorResults, err := cleanEditors(ctx, sweeper, editors, params)
				if err != nil {
					return err
				}
				results = append(results, editorResults...)
			}
			if includePlugin {
				result, err := sweeper.CleanPluginHome(ctx, params)
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			failed := 0
			for _, result := range results {
				displayCleanupResult(result)
				if result.Phase == cleaner.PhasePartiallyFailed {
					failed++
				}
			}
			displayCleanupTotals(results)

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d targets reported failures", cleaner.ErrPartialFailure, failed, len(results))
			}
			return nil
		},
	}

	cleanCmd.Flags().StringArrayVarP(&editors, "editor", "e", nil, "Limit to the named editor variant (repeatable)")
	cleanCmd.Flags().StringArrayVarP(&preserve, "preserve", "p", nil, "Additional preservation pattern (repeatable)")
	cleanCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report what would be removed without removing anything")
	cleanCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm a live run")
	cleanCmd.Flags().BoolVar(&pluginHome, "plugin-home", false, "Sweep the plugin home directory")
	cleanCmd.Flags().BoolVar(&keepTelemetry, "keep-telemetry", false, "Leave telemetry identifiers untouched")
	cleanCmd.Flags().BoolVar(&keepStore, "keep-store", false, "Leave state database rows untouched")

	return cleanCmd
}

// cleanEditors runs the cleanup for the named editors, or for every
// configured editor when none are named.
func cleanEditors(
	ctx context.Context,
	sweeper cleaner.Cleaner,
	editors []string,
	params cleaner.CleanParams,
) ([]cleaner.CleanupResult, error) {
	if len(editors) == 0 {
		return sweeper.CleanAll(ctx, params)
	}

	results := make([]cleaner.CleanupResult, 0, len(editors))
	for _, name := range editors {
		editorParams := params
		editorParams.Editor = name
		result, err := sweeper.Clean(ctx, editorParams)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// displayCleanupResult prints one cleanup run's outcome.
func displayCleanupResult(result cleaner.CleanupResult) {
	mode := ""
	if result.DryRun {
		mode = " (dry-run)"
	}
	printf("%s: %s%s\n", result.Editor, result.Phase, mode)

	verb := "removed"
	if result.DryRun {
		verb = "would remove"
	}
	printf("  %s %d of %d entries (%s), preserved %d, skipped %d, failed %d\n",
		verb, result.TotalRemoved, result.TotalScanned, formatBytes(result.BytesFreed),
		result.PreservedCount, result.SkippedCount, result.FailedCount)

	if result.Telemetry != nil {
		displayTelemetrySummary(*result.Telemetry, result.DryRun)
	}
	if len(result.StoreResults) > 0 {
		storeVerb := "deleted"
		if result.DryRun {
			storeVerb = "would delete"
		}
		printf("  store: %s %d rows across %d databases\n",
			storeVerb, result.StoreRows, len(result.StoreResults))
	}

	// One line per entry with --verbose; otherwise only failures.
	for _, item := range result.Items {
		if !verbose && item.Outcome != cleaner.OutcomeFailed {
			continue
		}
		if item.Detail != "" {
			printf("  %s: %s (%s)\n", item.Outcome, item.Path, item.Detail)
		} else {
			printf("  %s: %s\n", item.Outcome, item.Path)
		}
	}
	for _, auxError := range result.AuxErrors {
		printf("  warning: %s\n", auxError)
	}
}

// displayTelemetrySummary prints the identifier rewrite in abbreviated
// form; the telemetry command prints full values.
func displayTelemetrySummary(rewrite telemetry.Rewrite, dryRun bool) {
	if dryRun {
		printf("  telemetry: would rewrite identifiers in %s\n", rewrite.Path)
		return
	}
	printf("  telemetry: machineId %s -> %s\n", shortID(rewrite.Old.MachineID), shortID(rewrite.New.MachineID))
	printf("  telemetry: devDeviceId %s -> %s\n", rewrite.Old.DevDeviceID, rewrite.New.DevDeviceID)
}

// displayCleanupTotals prints combined counters when several targets
// were cleaned.
func displayCleanupTotals(results []cleaner.CleanupResult) {
	if len(results) < 2 {
		return
	}

	var scanned, removed int
	var bytesFreed, storeRows int64
	for _, result := range results {
		scanned += result.TotalScanned
		removed += result.TotalRemoved
		bytesFreed += result.BytesFreed
		storeRows += result.StoreRows
	}

	verb := "removed"
	if results[0].DryRun {
		verb = "would remove"
	}
	printf("\nTotal: %s %d of %d entries (%s), %d store rows.\n",
		verb, removed, scanned, formatBytes(bytesFreed), storeRows)
}

// shortID abbreviates a long identifier for display.
func shortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12] + "..."
}
