package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsweep/vsweep/pkg/cleaner"
)

func createScanCmd() *cobra.Command {
	var editors []string
	var preserve []string

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan editor state without removing anything",
		Long: `Scan the state directories of the configured editor variants and report
what a cleanup would remove: every file with its kind, classification
and size, plus the state database rows matching the configured key
patterns. Nothing is modified.

Examples:
  vsweep scan
  vsweep scan --editor vscode
  vsweep scan --preserve 'keybindings.json'`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sweeper, err := newCleaner(cfg)
			if err != nil {
				return err
			}

			variants, err := parseVariants(editors)
			if err != nil {
				return err
			}

			scanReport, err := sweeper.ScanRoots(variants, cleaner.ScanOpts{
				Preserve:          preserve,
				CountStoreMatches: true,
			})
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			displayScanReport(scanReport)
			return nil
		},
	}

	scanCmd.Flags().StringArrayVarP(&editors, "editor", "e", nil, "Limit to the named editor variant (repeatable)")
	scanCmd.Flags().StringArrayVarP(&preserve, "preserve", "p", nil, "Additional preservation pattern (repeatable)")

	return scanCmd
}

// displayScanReport prints the manifest root by root, then the totals.
func displayScanReport(scanReport cleaner.ScanReport) {
	if scanReport.TotalEntries() == 0 {
		printf("Nothing found to scan.\n")
		return
	}

	for _, rootReport := range scanReport.Roots {
		if len(rootReport.Entries) == 0 {
			continue
		}
		printf("%s (%s):\n", rootReport.Root.Path, rootReport.Root.Kind)
		for _, entry := range rootReport.Entries {
			printf("  %-9s %-16s %10s  %s\n",
				entry.Classification, entry.Kind, formatBytes(entry.SizeBytes), entry.Path)
		}
	}

	if len(scanReport.StoreMatches) > 0 {
		printf("\nState database rows matching the configured key patterns:\n")
		for _, match := range scanReport.StoreMatches {
			printf("  %d rows  %s\n", match.Matches, match.Path)
		}
	}

	printf("\nScanned %d files, %s total, %s removable, %d matching store rows.\n",
		scanReport.TotalEntries(),
		formatBytes(scanReport.TotalBytes()),
		formatBytes(scanReport.RemovableBytes()),
		scanReport.TotalStoreMatches())
}
