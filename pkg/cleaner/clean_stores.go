package cleaner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vsweep/vsweep/pkg/cleaner/consts"
	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/store"
)

// StoreOpts adjusts a CleanStores run.
type StoreOpts struct {
	// DryRun counts matching rows instead of deleting them.
	DryRun bool
}

// CleanStores deletes matching rows from the variant's state databases.
// An empty pattern list means the configured store key patterns.
func (c *realCleaner) CleanStores(
	ctx context.Context,
	variant editor.Variant,
	keyPatterns []string,
	opts ...StoreOpts,
) ([]store.CleanResult, error) {
	opt := extractStoreOpts(opts)

	// Prepare parameters for hooks
	hookParams := map[string]interface{}{
		"editor":   string(variant),
		"patterns": keyPatterns,
		"dryRun":   opt.DryRun,
	}

	// Execute with hooks
	return c.executeWithHooksAndReturnStoreResults(consts.CleanStore, hookParams, func() ([]store.CleanResult, error) {
		return c.cleanStores(ctx, variant, keyPatterns, opt)
	})
}

// extractStoreOpts merges the variadic options, later ones overriding earlier ones.
func extractStoreOpts(opts []StoreOpts) StoreOpts {
	var result StoreOpts
	for _, opt := range opts {
		if opt.DryRun {
			result.DryRun = true
		}
	}
	return result
}

// cleanStores performs the actual row deletion across every state
// database of the variant. Databases are handled independently; a
// locked one does not stop the others.
func (c *realCleaner) cleanStores(
	ctx context.Context,
	variant editor.Variant,
	keyPatterns []string,
	opt StoreOpts,
) ([]store.CleanResult, error) {
	roots, err := c.locator.Locate(variant, editor.CurrentOS())
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s roots: %w", variant, err)
	}

	patterns := keyPatterns
	if len(patterns) == 0 {
		patterns = c.config.StoreKeyPatterns
	}

	paths, failures := c.stateDatabases(roots)
	var results []store.CleanResult
	for _, dbPath := range paths {
		result, err := c.cleanStore(ctx, dbPath, patterns, opt.DryRun)
		if errors.Is(err, store.ErrStoreNotFound) {
			continue
		}
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		results = append(results, result)
		if opt.DryRun {
			c.VerbosePrint("%d matching rows in %s", result.RowsDeleted, result.Path)
		} else {
			c.VerbosePrint("Cleaned %d rows from %s", result.RowsDeleted, result.Path)
		}
	}

	if len(failures) > 0 {
		return results, fmt.Errorf("%w: %s", ErrStoreCleanupFailed, strings.Join(failures, "; "))
	}
	return results, nil
}

// cleanStore handles one database. Dry runs report the match count in
// RowsDeleted so both modes produce the same numbers.
func (c *realCleaner) cleanStore(ctx context.Context, dbPath string, patterns []string, dryRun bool) (store.CleanResult, error) {
	if !dryRun {
		return c.store.Clean(ctx, dbPath, patterns)
	}

	matches, err := c.store.CountMatches(ctx, dbPath, patterns)
	if err != nil {
		return store.CleanResult{}, err
	}
	return store.CleanResult{
		Path:        dbPath,
		TableExists: true,
		RowsDeleted: matches,
	}, nil
}
