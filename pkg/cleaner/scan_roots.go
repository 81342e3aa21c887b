package cleaner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vsweep/vsweep/pkg/cleaner/consts"
	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/scan"
	"github.com/vsweep/vsweep/pkg/store"
)

// ScanOpts adjusts a ScanRoots run.
type ScanOpts struct {
	// Preserve extends the configured preservation patterns.
	Preserve []string
	// CountStoreMatches also counts state database rows matching the
	// configured key patterns, without deleting anything.
	CountStoreMatches bool
}

// StoreMatch is the read-only match count for one state database.
type StoreMatch struct {
	Path    string
	Matches int64
}

// RootReport is the scan outcome for one environment root.
type RootReport struct {
	Root    editor.EnvironmentRoot
	Entries []scan.FileEntry
}

// TotalBytes returns the byte size of everything under the root.
func (r RootReport) TotalBytes() int64 {
	var total int64
	for _, entry := range r.Entries {
		total += entry.SizeBytes
	}
	return total
}

// RemovableBytes returns the byte size of the entries not covered by
// the preservation set.
func (r RootReport) RemovableBytes() int64 {
	var total int64
	for _, entry := range r.Entries {
		if entry.Classification == scan.ClassificationRemovable {
			total += entry.SizeBytes
		}
	}
	return total
}

// ScanReport aggregates scan outcomes across roots.
type ScanReport struct {
	Roots []RootReport

	// StoreMatches is populated when the scan was asked to count state
	// database rows matching the configured key patterns.
	StoreMatches []StoreMatch
}

// TotalEntries returns the number of scanned files across all roots.
func (s ScanReport) TotalEntries() int {
	var total int
	for _, root := range s.Roots {
		total += len(root.Entries)
	}
	return total
}

// TotalBytes returns the byte size of everything scanned.
func (s ScanReport) TotalBytes() int64 {
	var total int64
	for _, root := range s.Roots {
		total += root.TotalBytes()
	}
	return total
}

// RemovableBytes returns the byte size a cleanup could reclaim.
func (s ScanReport) RemovableBytes() int64 {
	var total int64
	for _, root := range s.Roots {
		total += root.RemovableBytes()
	}
	return total
}

// TotalStoreMatches returns the number of state database rows a store
// cleanup would delete.
func (s ScanReport) TotalStoreMatches() int64 {
	var total int64
	for _, match := range s.StoreMatches {
		total += match.Matches
	}
	return total
}

// ScanRoots enumerates and classifies every file under the given
// editors' roots without mutating anything. An empty editor list means
// every configured editor.
func (c *realCleaner) ScanRoots(editors []editor.Variant, opts ...ScanOpts) (ScanReport, error) {
	opt := extractScanOpts(opts)

	// Prepare parameters for hooks
	hookParams := map[string]interface{}{
		"editors": variantNames(editors),
	}

	// Execute with hooks
	return c.executeWithHooksAndReturnScanReport(consts.ScanRoots, hookParams, func() (ScanReport, error) {
		return c.scanRoots(editors, opt)
	})
}

// extractScanOpts merges the variadic options, later ones overriding earlier ones.
func extractScanOpts(opts []ScanOpts) ScanOpts {
	var result ScanOpts
	for _, opt := range opts {
		if len(opt.Preserve) > 0 {
			result.Preserve = opt.Preserve
		}
		if opt.CountStoreMatches {
			result.CountStoreMatches = true
		}
	}
	return result
}

// scanRoots performs the actual scan across all discovered roots.
func (c *realCleaner) scanRoots(editors []editor.Variant, opt ScanOpts) (ScanReport, error) {
	roots, err := c.listRoots(editors)
	if err != nil {
		return ScanReport{}, err
	}

	preservation, err := c.preservationSet(opt.Preserve)
	if err != nil {
		return ScanReport{}, err
	}

	scanReport := ScanReport{Roots: make([]RootReport, 0, len(roots))}
	for _, root := range roots {
		entries, err := c.scanner.Scan(root, preservation)
		if err != nil {
			return ScanReport{}, fmt.Errorf("failed to scan %s: %w", root.Path, err)
		}
		scanReport.Roots = append(scanReport.Roots, RootReport{Root: root, Entries: entries})
	}

	if opt.CountStoreMatches {
		matches, err := c.countStoreMatches(roots)
		if err != nil {
			return ScanReport{}, err
		}
		scanReport.StoreMatches = matches
	}

	return scanReport, nil
}

// countStoreMatches counts matching rows in every discovered state
// database without deleting anything.
func (c *realCleaner) countStoreMatches(roots []editor.EnvironmentRoot) ([]StoreMatch, error) {
	paths, failures := c.stateDatabases(roots)
	if len(failures) > 0 {
		return nil, fmt.Errorf("failed to discover state databases: %s", strings.Join(failures, "; "))
	}

	matches := make([]StoreMatch, 0, len(paths))
	for _, dbPath := range paths {
		count, err := c.store.CountMatches(context.Background(), dbPath, c.config.StoreKeyPatterns)
		if err != nil {
			if errors.Is(err, store.ErrStoreNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to count matches in %s: %w", dbPath, err)
		}
		matches = append(matches, StoreMatch{Path: dbPath, Matches: count})
	}
	return matches, nil
}
