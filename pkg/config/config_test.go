//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig(t *testing.T) Config {
	t.Helper()
	base := t.TempDir()
	return Config{
		BasePath:         filepath.Join(base, "state"),
		HistoryFile:      filepath.Join(base, "state", "history.yaml"),
		Editors:          []string{"vscode", "cursor"},
		PluginHome:       filepath.Join(base, ".augment"),
		Preserve:         []string{"settings.json"},
		StoreKeyPatterns: []string{"%augment%"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(_ *Config) {},
			wantErr: nil,
		},
		{
			name:    "empty base path",
			mutate:  func(c *Config) { c.BasePath = "" },
			wantErr: ErrBasePathEmpty,
		},
		{
			name:    "no editors",
			mutate:  func(c *Config) { c.Editors = nil },
			wantErr: ErrEditorsEmpty,
		},
		{
			name:    "blank editor entry",
			mutate:  func(c *Config) { c.Editors = []string{"vscode", "  "} },
			wantErr: ErrEditorsEmpty,
		},
		{
			name:    "bad preserve glob",
			mutate:  func(c *Config) { c.Preserve = []string{"[unclosed"} },
			wantErr: ErrInvalidPreservePattern,
		},
		{
			name:    "blank store key pattern",
			mutate:  func(c *Config) { c.StoreKeyPatterns = []string{""} },
			wantErr: ErrStoreKeyPatternEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRealManager_DefaultConfig(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	cfg := manager.DefaultConfig()

	assert.NotEmpty(t, cfg.BasePath)
	assert.Contains(t, cfg.BasePath, ".vsweep")
	assert.Contains(t, cfg.Editors, "vscode")
	assert.Contains(t, cfg.Editors, "cursor")
	assert.Equal(t, []string{"settings.json"}, cfg.Preserve)
	assert.NotEmpty(t, cfg.StoreKeyPatterns)
	assert.NoError(t, cfg.Validate())
}

func TestRealManager_GetConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	validYAML := `base_path: ` + filepath.Join(tempDir, "state") + `
editors:
  - vscode
preserve:
  - settings.json
store_key_patterns:
  - "%augment%"
`
	require.NoError(t, os.WriteFile(configPath, []byte(validYAML), 0644))

	manager := NewManager(configPath)
	cfg, err := manager.GetConfig()

	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "state"), cfg.BasePath)
	assert.Equal(t, []string{"vscode"}, cfg.Editors)
}

func TestRealManager_GetConfig_ExpandsTildes(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	yamlWithTilde := `base_path: ~/.vsweep
plugin_home: ~/.augment
editors:
  - vscode
preserve:
  - settings.json
store_key_patterns:
  - "%augment%"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlWithTilde), 0644))

	manager := NewManager(configPath)
	cfg, err := manager.GetConfig()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".vsweep"), cfg.BasePath)
	assert.Equal(t, filepath.Join(home, ".augment"), cfg.PluginHome)
}

func TestRealManager_GetConfig_FileNotFound(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "missing", "config.yaml"))

	_, err := manager.GetConfig()
	assert.ErrorIs(t, err, ErrConfigNotInitialized)
}

func TestRealManager_GetConfig_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	invalidYAML := `base_path: /some/path
invalid: yaml: structure: here`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidYAML), 0644))

	manager := NewManager(configPath)
	_, err := manager.GetConfig()
	assert.ErrorIs(t, err, ErrConfigFileParse)
}

func TestRealManager_GetConfigWithFallback(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "config.yaml"))

	cfg, err := manager.GetConfigWithFallback()
	assert.NoError(t, err)
	assert.NotEmpty(t, cfg.BasePath)
	assert.NotEmpty(t, cfg.Editors)
}

func TestRealManager_WriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	manager := NewManager(configPath)

	require.NoError(t, manager.WriteDefaultConfig())

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# vsweep default configuration")

	// The packaged template must stay in sync with DefaultConfig.
	got, err := manager.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, manager.DefaultConfig(), got)
}

func TestRealManager_SaveConfig_RoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	manager := NewManager(configPath)

	want := validTestConfig(t)
	require.NoError(t, manager.SaveConfig(want))

	got, err := manager.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, want.BasePath, got.BasePath)
	assert.Equal(t, want.Editors, got.Editors)
	assert.Equal(t, want.Preserve, got.Preserve)
	assert.Equal(t, want.StoreKeyPatterns, got.StoreKeyPatterns)
}

func TestRealManager_SaveConfig_RejectsInvalid(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "config.yaml"))

	cfg := validTestConfig(t)
	cfg.BasePath = ""
	assert.ErrorIs(t, manager.SaveConfig(cfg), ErrBasePathEmpty)
}
