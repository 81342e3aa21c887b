package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/telemetry"
)

func createTelemetryCmd() *cobra.Command {
	var editors []string

	telemetryCmd := &cobra.Command{
		Use:   "telemetry",
		Short: "Rewrite telemetry identifiers",
		Long: `Replace the machineId and devDeviceId values in every storage.json of
the targeted editors with freshly generated identifiers. Every other
key is left exactly as it was.

Examples:
  vsweep telemetry
  vsweep telemetry --editor vscode`,
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

			var failures []string
			for _, variant := range variants {
				rewrites, err := sweeper.RewriteTelemetry(variant)
				for _, rewrite := range rewrites {
					displayRewrite(variant, rewrite)
				}
				if err != nil {
					if errors.Is(err, telemetry.ErrConfigNotFound) {
						printf("%s: no storage config found\n", variant)
						continue
					}
					failures = append(failures, fmt.Sprintf("%s: %v", variant, err))
				}
			}

			if len(failures) > 0 {
				return fmt.Errorf("telemetry rewrite failed: %s", strings.Join(failures, "; "))
			}
			return nil
		},
	}

	telemetryCmd.Flags().StringArrayVarP(&editors, "editor", "e", nil, "Limit to the named editor variant (repeatable)")

	return telemetryCmd
}

// displayRewrite prints the full old and new identifier values.
func displayRewrite(variant editor.Variant, rewrite telemetry.Rewrite) {
	printf("%s: %s\n", variant, rewrite.Path)
	printf("  machineId   %s -> %s\n", rewrite.Old.MachineID, rewrite.New.MachineID)
	printf("  devDeviceId %s -> %s\n", rewrite.Old.DevDeviceID, rewrite.New.DevDeviceID)
}
