package main

import (
	"github.com/spf13/cobra"

	"github.com/vsweep/vsweep/pkg/cleaner"
)

func createInitCmd() *cobra.Command {
	var (
		force    bool
		basePath string
	)

	initCmd := &cobra.Command{
		Use:   "init [--force] [--base-path <path>]",
		Short: "Initialize vsweep configuration",
		Long: `Write the default configuration file and create the base directory.

Flags:
  --force       Overwrite an existing configuration file
  --base-path   Set the directory for vsweep state (default ~/.vsweep)`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			manager := newConfigManager()
			cfg, err := manager.GetConfigWithFallback()
			if err != nil {
				return err
			}

			sweeper, err := newCleaner(&cfg)
			if err != nil {
				return err
			}

			opts := cleaner.InitOpts{
				Force:    force,
				BasePath: basePath,
			}
			if err := sweeper.Init(opts); err != nil {
				return err
			}

			printf("Configuration written to %s\n", manager.GetConfigPath())
			return nil
		},
	}

	// Add flags
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	initCmd.Flags().StringVar(&basePath, "base-path", "",
		"Set the directory for vsweep state (default ~/.vsweep)")

	return initCmd
}
