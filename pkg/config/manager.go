package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vsweep/vsweep/configs"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=manager.go -destination=mocks/manager.gen.go -package=mocks

// Manager interface provides configuration management functionality with an embedded config path.
type Manager interface {
	// GetConfig loads the configuration, failing if the file is missing.
	GetConfig() (Config, error)
	// GetConfigWithFallback loads the configuration, falling back to the default if missing.
	GetConfigWithFallback() (Config, error)
	// SaveConfig writes the configuration to the embedded config path.
	SaveConfig(config Config) error
	// WriteDefaultConfig writes the packaged default configuration template,
	// comments included, to the embedded config path.
	WriteDefaultConfig() error
	// CreateConfigDirectory creates the configuration directory structure.
	CreateConfigDirectory() error
	// GetConfigPath returns the embedded config path.
	GetConfigPath() string
	// DefaultConfig returns the default configuration.
	DefaultConfig() Config
}

// realManager manages configuration with an embedded config path.
type realManager struct {
	configPath string
}

// NewManager creates a new Manager instance with the specified config path.
func NewManager(configPath string) Manager {
	return &realManager{
		configPath: configPath,
	}
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".vsweep", "config.yaml")
}

// GetConfig loads configuration from the embedded config path.
func (c *realManager) GetConfig() (Config, error) {
	// Check if config file exists
	if _, err := os.Stat(c.configPath); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigNotInitialized, c.configPath)
	}

	// Read config file
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigFileParse, err)
	}

	// Expand tildes in configuration paths
	if err := config.expandTildes(); err != nil {
		return Config{}, fmt.Errorf("failed to expand tildes in configuration: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// GetConfigWithFallback loads the configuration from the embedded config path, falling back to default if not found.
func (c *realManager) GetConfigWithFallback() (Config, error) {
	// Try to load from file first
	if config, err := c.GetConfig(); err == nil {
		return config, nil
	}

	return c.DefaultConfig(), nil
}

// SaveConfig writes the configuration to the embedded config path.
func (c *realManager) SaveConfig(config Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := c.CreateConfigDirectory(); err != nil {
		return err
	}

	// Marshal configuration to YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(c.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}

// WriteDefaultConfig writes the packaged default configuration template to
// the embedded config path. Unlike SaveConfig it keeps the template's
// comments, so freshly initialized configurations stay self-documenting.
func (c *realManager) WriteDefaultConfig() error {
	if err := c.CreateConfigDirectory(); err != nil {
		return err
	}

	if err := os.WriteFile(c.configPath, configs.DefaultConfigYAML, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}

// CreateConfigDirectory creates the configuration directory structure.
func (c *realManager) CreateConfigDirectory() error {
	configDir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// GetConfigPath returns the embedded config path.
func (c *realManager) GetConfigPath() string {
	return c.configPath
}

// DefaultConfig returns the default configuration.
func (c *realManager) DefaultConfig() Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home directory cannot be determined
		homeDir = "."
	}

	return Config{
		BasePath:    filepath.Join(homeDir, ".vsweep"),
		HistoryFile: filepath.Join(homeDir, ".vsweep", "history.yaml"),
		Editors:     []string{"vscode", "cursor", "windsurf", "vscodium", "code-oss"},
		PluginHome:  filepath.Join(homeDir, ".augment"),
		Preserve:    []string{"settings.json"},
		StoreKeyPatterns: []string{
			"%augment%",
			"%Augment%",
		},
		ProtectedPaths: []string{},
	}
}
