package cleaner

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"sort"
	"time"

	"github.com/vsweep/vsweep/pkg/cleaner/consts"
	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/guard"
	"github.com/vsweep/vsweep/pkg/preserve"
	"github.com/vsweep/vsweep/pkg/report"
	"github.com/vsweep/vsweep/pkg/scan"
	"github.com/vsweep/vsweep/pkg/store"
	"github.com/vsweep/vsweep/pkg/telemetry"
)

// pluginHomeLabel identifies plugin home runs in results and history.
const pluginHomeLabel = "plugin-home"

// Clean removes removable state for a single editor variant.
func (c *realCleaner) Clean(ctx context.Context, params CleanParams) (CleanupResult, error) {
	// Prepare parameters for hooks
	hookParams := map[string]interface{}{
		"editor": params.Editor,
		"dryRun": params.DryRun,
	}

	// Execute with hooks
	return c.executeWithHooksAndReturnResult(consts.Clean, hookParams, func() (CleanupResult, error) {
		return c.cleanEditor(ctx, params)
	})
}

// CleanAll runs Clean for every configured editor.
func (c *realCleaner) CleanAll(ctx context.Context, params CleanParams) ([]CleanupResult, error) {
	if len(c.config.Editors) == 0 {
		return nil, ErrNoEditorsConfigured
	}

	results := make([]CleanupResult, 0, len(c.config.Editors))
	for _, name := range c.config.Editors {
		variant, err := editor.ParseVariant(name)
		if err != nil {
			return results, fmt.Errorf("configured editor %q: %w", name, err)
		}

		editorParams := params
		editorParams.Editor = string(variant)
		result, err := c.Clean(ctx, editorParams)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// CleanPluginHome sweeps the plugin's dedicated environment directory.
func (c *realCleaner) CleanPluginHome(ctx context.Context, params CleanParams) (CleanupResult, error) {
	// Prepare parameters for hooks
	hookParams := map[string]interface{}{
		"target": pluginHomeLabel,
		"dryRun": params.DryRun,
	}

	// Execute with hooks
	return c.executeWithHooksAndReturnResult(consts.Clean, hookParams, func() (CleanupResult, error) {
		return c.cleanPluginHome(ctx, params)
	})
}

// cleanEditor performs the actual cleanup run for one editor variant.
func (c *realCleaner) cleanEditor(ctx context.Context, params CleanParams) (CleanupResult, error) {
	variant, err := editor.ParseVariant(params.Editor)
	if err != nil {
		return CleanupResult{Editor: params.Editor, Phase: PhaseIdle}, err
	}

	result := CleanupResult{Editor: string(variant), Phase: PhaseIdle, DryRun: params.DryRun}
	startedAt := time.Now()

	preservation, err := c.preservationSet(params.Preserve)
	if err != nil {
		return result, err
	}
	guardInstance, err := c.guardProvider(preservation)
	if err != nil {
		return result, fmt.Errorf("failed to build safety guard: %w", err)
	}

	roots, err := c.locator.Locate(variant, editor.CurrentOS())
	if err != nil {
		return result, fmt.Errorf("failed to locate %s roots: %w", variant, err)
	}
	c.VerbosePrint("Cleaning %s: %d existing roots", variant, len(roots))

	if err := c.sweepRoots(ctx, roots, params, preservation, guardInstance, &result); err != nil {
		return result, err
	}

	if !params.KeepTelemetry {
		c.rewriteTelemetryForRoots(roots, params.DryRun, &result)
	}
	if !params.KeepStore {
		c.cleanStoresForRoots(ctx, roots, params, &result)
	}

	result.finishPhase()
	c.recordRun(startedAt, roots, &result)
	return result, nil
}

// cleanPluginHome performs the actual plugin home sweep.
func (c *realCleaner) cleanPluginHome(ctx context.Context, params CleanParams) (CleanupResult, error) {
	result := CleanupResult{Editor: pluginHomeLabel, Phase: PhaseIdle, DryRun: params.DryRun}
	startedAt := time.Now()

	preservation, err := c.preservationSet(params.Preserve)
	if err != nil {
		return result, err
	}
	guardInstance, err := c.guardProvider(preservation)
	if err != nil {
		return result, fmt.Errorf("failed to build safety guard: %w", err)
	}

	root, err := c.locator.PluginHome()
	if err != nil {
		return result, fmt.Errorf("failed to locate plugin home: %w", err)
	}
	if !root.Exists {
		result.Phase = PhaseCompleted
		return result, nil
	}
	c.VerbosePrint("Cleaning plugin home at %s", root.Path)

	// Only the preservation set decides what survives in the plugin home.
	sweepParams := params
	sweepParams.Kinds = AllKinds()

	roots := []editor.EnvironmentRoot{root}
	if err := c.sweepRoots(ctx, roots, sweepParams, preservation, guardInstance, &result); err != nil {
		return result, err
	}

	result.finishPhase()
	c.recordRun(startedAt, roots, &result)
	return result, nil
}

// sweepRoots scans the given roots, validates every entry against the
// guard and removes what survives validation. Failures on individual
// items are recorded and do not stop the run; only context cancellation
// aborts it.
func (c *realCleaner) sweepRoots(
	ctx context.Context,
	roots []editor.EnvironmentRoot,
	params CleanParams,
	preservation preserve.PreservationSet,
	guardInstance guard.Guard,
	result *CleanupResult,
) error {
	targets := kindSet(params.Kinds)

	result.Phase = PhaseScanning
	type scannedRoot struct {
		root    editor.EnvironmentRoot
		entries []scan.FileEntry
	}
	scanned := make([]scannedRoot, 0, len(roots))
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := c.scanner.Scan(root, preservation)
		if err != nil {
			result.AuxErrors = append(result.AuxErrors, fmt.Sprintf("scan %s: %v", root.Path, err))
			continue
		}
		scanned = append(scanned, scannedRoot{root: root, entries: entries})
	}

	result.Phase = PhaseValidating
	var pending []scan.FileEntry
	for _, sr := range scanned {
		for _, entry := range sr.entries {
			result.TotalScanned++

			if entry.Classification == scan.ClassificationPreserve {
				result.recordItem(ItemStatus{Path: entry.Path, Kind: entry.Kind, Outcome: OutcomePreserved})
				continue
			}
			if _, targeted := targets[entry.Kind]; !targeted {
				result.recordItem(ItemStatus{
					Path:    entry.Path,
					Kind:    entry.Kind,
					Outcome: OutcomeSkipped,
					Detail:  fmt.Sprintf("kind %s is not targeted", entry.Kind),
				})
				continue
			}
			if err := guardInstance.Check(entry.Path, sr.root.Path); err != nil {
				if errors.Is(err, guard.ErrPreservedPath) {
					result.recordItem(ItemStatus{Path: entry.Path, Kind: entry.Kind, Outcome: OutcomePreserved})
				} else {
					result.recordItem(ItemStatus{
						Path:    entry.Path,
						Kind:    entry.Kind,
						Outcome: OutcomeSkipped,
						Detail:  err.Error(),
					})
				}
				continue
			}
			pending = append(pending, entry)
		}
	}

	result.Phase = PhaseApplying
	for i, entry := range pending {
		if err := ctx.Err(); err != nil {
			// Keep the counter identity intact for the aborted remainder.
			for _, rest := range pending[i:] {
				result.recordItem(ItemStatus{Path: rest.Path, Kind: rest.Kind, Outcome: OutcomeSkipped, Detail: "run canceled"})
			}
			return err
		}

		if params.DryRun {
			result.recordItem(ItemStatus{Path: entry.Path, Kind: entry.Kind, Outcome: OutcomeRemoved})
			result.BytesFreed += entry.SizeBytes
			continue
		}
		if err := c.fs.Remove(entry.Path); err != nil {
			result.recordItem(ItemStatus{Path: entry.Path, Kind: entry.Kind, Outcome: OutcomeFailed, Detail: err.Error()})
			continue
		}
		result.recordItem(ItemStatus{Path: entry.Path, Kind: entry.Kind, Outcome: OutcomeRemoved})
		result.BytesFreed += entry.SizeBytes
	}

	if !params.DryRun {
		for _, sr := range scanned {
			c.pruneEmptyDirs(sr.root.Path)
		}
	}
	return nil
}

// pruneEmptyDirs removes directories the sweep left empty, deepest
// first. Remove fails on non-empty directories, which keeps everything
// still holding files in place. The root itself is never removed.
func (c *realCleaner) pruneEmptyDirs(rootPath string) {
	var dirs []string
	_ = c.fs.WalkDir(rootPath, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}
		if d.IsDir() && path != rootPath {
			dirs = append(dirs, path)
		}
		return nil
	})

	// Children sort after their parent, so the reverse order deletes
	// leaf directories first.
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	for _, dir := range dirs {
		_ = c.fs.Remove(dir)
	}
}

// rewriteTelemetryForRoots regenerates telemetry identifiers in every
// storage config found under the given roots. A missing config is not
// an error; the editor simply never wrote one.
func (c *realCleaner) rewriteTelemetryForRoots(roots []editor.EnvironmentRoot, dryRun bool, result *CleanupResult) {
	for _, root := range roots {
		configPath, ok := editor.StorageConfigPath(root)
		if !ok {
			continue
		}

		if dryRun {
			ids, err := c.telemetry.ReadIDs(configPath)
			if errors.Is(err, telemetry.ErrConfigNotFound) {
				continue
			}
			if err != nil {
				result.AuxErrors = append(result.AuxErrors, fmt.Sprintf("telemetry %s: %v", configPath, err))
				continue
			}
			// New is left empty: fresh identifiers are only generated
			// when the rewrite actually happens.
			result.Telemetry = &telemetry.Rewrite{Path: configPath, Old: ids}
			continue
		}

		rewrite, err := c.telemetry.RewriteIDs(configPath)
		if errors.Is(err, telemetry.ErrConfigNotFound) {
			continue
		}
		if err != nil {
			result.AuxErrors = append(result.AuxErrors, fmt.Sprintf("telemetry %s: %v", configPath, err))
			continue
		}
		result.Telemetry = &rewrite
		c.VerbosePrint("Rewrote telemetry identifiers in %s", configPath)
	}
}

// cleanStoresForRoots deletes matching rows from every state database
// found under the given roots.
func (c *realCleaner) cleanStoresForRoots(
	ctx context.Context,
	roots []editor.EnvironmentRoot,
	params CleanParams,
	result *CleanupResult,
) {
	patterns := params.StorePatterns
	if len(patterns) == 0 {
		patterns = c.config.StoreKeyPatterns
	}

	paths, failures := c.stateDatabases(roots)
	result.AuxErrors = append(result.AuxErrors, failures...)
	for _, dbPath := range paths {
		cleanResult, err := c.cleanStore(ctx, dbPath, patterns, params.DryRun)
		if errors.Is(err, store.ErrStoreNotFound) {
			continue
		}
		if err != nil {
			result.AuxErrors = append(result.AuxErrors, fmt.Sprintf("store %s: %v", dbPath, err))
			continue
		}
		result.StoreResults = append(result.StoreResults, cleanResult)
		result.StoreRows += cleanResult.RowsDeleted
	}
}

// stateDatabases resolves the global and per-workspace state database
// paths under the given roots. Glob failures are reported alongside the
// resolvable paths.
func (c *realCleaner) stateDatabases(roots []editor.EnvironmentRoot) (paths, failures []string) {
	for _, root := range roots {
		if path, ok := editor.GlobalStatePath(root); ok {
			paths = append(paths, path)
		}
		if pattern, ok := editor.WorkspaceStateGlob(root); ok {
			matches, err := c.fs.Glob(pattern)
			if err != nil {
				failures = append(failures, fmt.Sprintf("glob %s: %v", pattern, err))
				continue
			}
			paths = append(paths, matches...)
		}
	}
	return paths, failures
}

// recordRun appends the run to the history file. History failures are
// logged, not surfaced.
func (c *realCleaner) recordRun(startedAt time.Time, roots []editor.EnvironmentRoot, result *CleanupResult) {
	rootPaths := make([]string, 0, len(roots))
	for _, root := range roots {
		rootPaths = append(rootPaths, root.Path)
	}

	run := report.Run{
		StartedAt:    startedAt,
		FinishedAt:   time.Now(),
		Editor:       result.Editor,
		Phase:        string(result.Phase),
		DryRun:       result.DryRun,
		TotalScanned: result.TotalScanned,
		TotalRemoved: result.TotalRemoved,
		Preserved:    result.PreservedCount,
		Skipped:      result.SkippedCount,
		Failed:       result.FailedCount,
		BytesFreed:   result.BytesFreed,
		StoreRows:    result.StoreRows,
		Roots:        rootPaths,
	}
	if err := c.reporter.Append(run); err != nil {
		c.VerbosePrint("Failed to record run history: %v", err)
	}
}
