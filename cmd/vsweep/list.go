package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsweep/vsweep/pkg/config"
	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/fs"
)

func createListCmd() *cobra.Command {
	var editors []string
	var all bool

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List detected editor state roots",
		Long: `List the state directories detected for the configured editor variants
on this system, plus the plugin home when present.

Examples:
  vsweep list
  vsweep list --editor vscode --editor cursor
  vsweep list --all`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if all {
				return listCandidates(editors, cfg)
			}

			sweeper, err := newCleaner(cfg)
			if err != nil {
				return err
			}

			variants, err := parseVariants(editors)
			if err != nil {
				return err
			}

			roots, err := sweeper.ListRoots(variants)
			if err != nil {
				return fmt.Errorf("failed to list roots: %w", err)
			}

			if len(roots) == 0 {
				printf("No editor state directories found.\n")
				return nil
			}

			printf("State roots for %s:\n", editor.CurrentOS())
			displayRoots(roots)
			return nil
		},
	}

	listCmd.Flags().StringArrayVarP(&editors, "editor", "e", nil, "Limit to the named editor variant (repeatable)")
	listCmd.Flags().BoolVar(&all, "all", false, "Include candidate directories that do not exist")

	return listCmd
}

// listCandidates displays every probed root, existing or not.
func listCandidates(editors []string, cfg *config.Config) error {
	variants, err := targetVariants(editors, cfg)
	if err != nil {
		return err
	}

	locator := editor.NewLocator(editor.NewLocatorParams{
		FS:         fs.NewFS(),
		PluginHome: cfg.PluginHome,
	})

	printf("Candidate state roots for %s:\n", editor.CurrentOS())
	for _, variant := range variants {
		candidates, err := locator.Candidates(variant, editor.CurrentOS())
		if err != nil {
			return fmt.Errorf("failed to probe %s roots: %w", variant, err)
		}
		displayRoots(candidates)
	}

	pluginHome, err := locator.PluginHome()
	if err != nil {
		return fmt.Errorf("failed to probe plugin home: %w", err)
	}
	displayRoots([]editor.EnvironmentRoot{pluginHome})
	return nil
}

// displayRoots prints one line per root.
func displayRoots(roots []editor.EnvironmentRoot) {
	for _, root := range roots {
		label := string(root.Variant)
		if root.Kind == editor.RootPluginHome {
			label = "plugin"
		}
		marker := ""
		if !root.Exists {
			marker = " (missing)"
		}
		printf("  [%s] %-16s %s%s\n", label, root.Kind, root.Path, marker)
	}
}
