package cleaner

import (
	"fmt"
	"path/filepath"

	"github.com/vsweep/vsweep/pkg/cleaner/consts"
)

// InitOpts contains optional parameters for Init.
type InitOpts struct {
	// Force overwrites an existing configuration file.
	Force bool
	// BasePath overrides the default base path when non-empty. The
	// history file follows it.
	BasePath string
}

// Init initializes vsweep configuration.
func (c *realCleaner) Init(opts InitOpts) error {
	// Prepare parameters for hooks
	params := map[string]interface{}{
		"force":    opts.Force,
		"basePath": opts.BasePath,
	}

	// Execute with hooks
	return c.executeWithHooks(consts.Init, params, func() error {
		return c.performInitialization(opts)
	})
}

// performInitialization performs the actual initialization logic.
func (c *realCleaner) performInitialization(opts InitOpts) error {
	c.VerbosePrint("Starting vsweep initialization")

	if c.configManager == nil {
		return ErrNoConfigManager
	}

	configPath := c.configManager.GetConfigPath()
	exists, err := c.fs.Exists(configPath)
	if err != nil {
		return fmt.Errorf("failed to check configuration existence: %w", err)
	}
	if exists && !opts.Force {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, configPath)
	}

	defaultConfig := c.configManager.DefaultConfig()
	if opts.BasePath != "" {
		expandedBasePath, err := c.fs.ExpandPath(opts.BasePath)
		if err != nil {
			return fmt.Errorf("failed to expand base path: %w", err)
		}
		defaultConfig.BasePath = expandedBasePath
		defaultConfig.HistoryFile = filepath.Join(expandedBasePath, "history.yaml")
		if err := c.configManager.SaveConfig(defaultConfig); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
	} else {
		// Without overrides the packaged template matches the defaults, so
		// copy it as is to keep its comments.
		if err := c.configManager.WriteDefaultConfig(); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
	}

	if err := c.fs.MkdirAll(defaultConfig.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to create base directory: %w", err)
	}

	c.VerbosePrint("vsweep initialization completed successfully")
	return nil
}
