package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsweep/vsweep/pkg/fs"
	"github.com/vsweep/vsweep/pkg/report"
)

func createHistoryCmd() *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show past cleanup runs",
		Long: `Show summaries of past cleanup runs, most recent first.

Examples:
  vsweep history
  vsweep history --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			reporter := report.NewManager(fs.NewFS(), cfg)
			runs, err := reporter.ListRuns()
			if err != nil {
				return fmt.Errorf("failed to read run history: %w", err)
			}

			if len(runs) == 0 {
				printf("No cleanup runs recorded yet.\n")
				return nil
			}

			displayRuns(runs, limit)
			return nil
		},
	}

	historyCmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many runs (0 shows all)")

	return historyCmd
}

// displayRuns prints one line per run. Runs are stored oldest first, so
// the walk is reversed.
func displayRuns(runs []report.Run, limit int) {
	shown := 0
	for i := len(runs) - 1; i >= 0; i-- {
		if limit > 0 && shown == limit {
			break
		}
		run := runs[i]

		mode := ""
		if run.DryRun {
			mode = " dry-run"
		}
		printf("%s  %-12s %-16s removed %d of %d (%s), store rows %d%s\n",
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Editor,
			run.Phase,
			run.TotalRemoved,
			run.TotalScanned,
			formatBytes(run.BytesFreed),
			run.StoreRows,
			mode)
		shown++
	}
}
