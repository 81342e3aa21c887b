package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsweep/vsweep/pkg/cleaner"
	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/store"
)

func createStoreCmd() *cobra.Command {
	var (
		editors  []string
		patterns []string
		dryRun   bool
	)

	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Delete matching rows from editor state databases",
		Long: `Delete rows whose keys match the configured LIKE patterns from the
ItemTable of every state database of the targeted editors. With
--dry-run the matching rows are counted instead of deleted.

Examples:
  vsweep store --dry-run
  vsweep store --editor vscode
  vsweep store --pattern '%augment%' --pattern '%Augment%'`,
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

			variants, err := targetVariants(editors, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			var failures []string
			var totalRows int64
			for _, variant := range variants {
				results, err := sweeper.CleanStores(ctx, variant, patterns, cleaner.StoreOpts{DryRun: dryRun})
				displayStoreResults(variant, results, dryRun)
				for _, result := range results {
					totalRows += result.RowsDeleted
				}
				if err != nil {
					failures = append(failures, fmt.Sprintf("%s: %v", variant, err))
				}
			}

			if len(failures) > 0 {
				return fmt.Errorf("store cleanup failed: %s", strings.Join(failures, "; "))
			}

			if dryRun {
				printf("\n%d rows match across all targeted editors.\n", totalRows)
			} else {
				printf("\nDeleted %d rows across all targeted editors.\n", totalRows)
			}
			return nil
		},
	}

	storeCmd.Flags().StringArrayVarP(&editors, "editor", "e", nil, "Limit to the named editor variant (repeatable)")
	storeCmd.Flags().StringArrayVarP(&patterns, "pattern", "p", nil, "LIKE pattern matched against row keys (repeatable)")
	storeCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Count matching rows without deleting them")

	return storeCmd
}

// displayStoreResults prints per-database row counts.
func displayStoreResults(variant editor.Variant, results []store.CleanResult, dryRun bool) {
	if len(results) == 0 {
		printf("%s: no state databases found\n", variant)
		return
	}

	verb := "deleted"
	if dryRun {
		verb = "matched"
	}
	for _, result := range results {
		if !result.TableExists {
			printf("%s: no ItemTable in %s\n", variant, result.Path)
			continue
		}
		printf("%s: %s %d rows in %s\n", variant, verb, result.RowsDeleted, result.Path)
	}
}
