// Package main provides the command-line interface for the vsweep application.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vsweep/vsweep/pkg/cleaner"
	"github.com/vsweep/vsweep/pkg/config"
	"github.com/vsweep/vsweep/pkg/editor"
	defaulthooks "github.com/vsweep/vsweep/pkg/hooks/default"
	"github.com/vsweep/vsweep/pkg/logger"
)

var (
	quiet      bool
	verbose    bool
	configPath string
)

// Exit codes: 0 success (dry runs included), 1 error, 2 cleanup
// finished with failures.
const (
	exitError          = 1
	exitPartialFailure = 2
)

// newConfigManager creates a config manager honoring the --config flag.
func newConfigManager() config.Manager {
	if configPath != "" {
		return config.NewManager(configPath)
	}
	return config.NewManager(config.DefaultConfigPath())
}

// loadConfig loads the configuration strictly, failing if not found.
func loadConfig() (*config.Config, error) {
	cfg, err := newConfigManager().GetConfig()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newLogger returns the logger selected by the global flags.
func newLogger() logger.Logger {
	if verbose && !quiet {
		return logger.NewDefaultLogger()
	}
	return logger.NewNoopLogger()
}

// newCleaner builds the cleanup engine with the default hook wiring.
func newCleaner(cfg *config.Config) (cleaner.Cleaner, error) {
	log := newLogger()
	hookManager, err := defaulthooks.NewDefaultHooksManager(log)
	if err != nil {
		return nil, err
	}

	return cleaner.NewCleaner(cleaner.NewCleanerParams{
		Config:        cfg,
		ConfigManager: newConfigManager(),
		Logger:        log,
		HookManager:   hookManager,
	})
}

// parseVariants converts --editor flag values into known variants. An
// empty selection returns nil so the engine falls back to the
// configured editors.
func parseVariants(names []string) ([]editor.Variant, error) {
	if len(names) == 0 {
		return nil, nil
	}
	variants := make([]editor.Variant, 0, len(names))
	for _, name := range names {
		variant, err := editor.ParseVariant(name)
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant)
	}
	return variants, nil
}

// targetVariants resolves the --editor selection, falling back to the
// configured editors when none are named.
func targetVariants(names []string, cfg *config.Config) ([]editor.Variant, error) {
	if len(names) == 0 {
		names = cfg.Editors
	}
	return parseVariants(names)
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

// printf writes to stdout unless --quiet is set.
func printf(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Printf(format, args...)
}

// formatBytes renders a byte count for display.
func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "vsweep",
		Short: "vsweep - Editor State Sweeper",
		Long: `A CLI tool that sanitizes the local state of VSCode-family editors: it
sweeps caches, logs and plugin leftovers, rewrites telemetry identifiers
and clears extension rows from the editors' state databases.`,
		SilenceUsage: true,
	}

	// Add global flags
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Specify a custom config file path")

	// Create commands
	listCmd := createListCmd()
	scanCmd := createScanCmd()
	cleanCmd := createCleanCmd()
	telemetryCmd := createTelemetryCmd()
	storeCmd := createStoreCmd()
	historyCmd := createHistoryCmd()
	initCmd := createInitCmd()

	// Add subcommands
	rootCmd.AddCommand(listCmd, scanCmd, cleanCmd, telemetryCmd, storeCmd, historyCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, cleaner.ErrPartialFailure) {
			os.Exit(exitPartialFailure)
		}
		os.Exit(exitError)
	}
}
