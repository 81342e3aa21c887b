//go:build e2e

package test

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vsweep/vsweep/pkg/cleaner"
	"github.com/vsweep/vsweep/pkg/config"
	"github.com/vsweep/vsweep/pkg/report"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // registers the pure-Go sqlite driver
)

// Fixture identifiers planted in storage.json.
const (
	originalMachineID   = "89c1ee4b2a8f4ad2a4bd25c04f42ba1f89c1ee4b2a8f4ad2a4bd25c04f42ba1f"
	originalDevDeviceID = "d0e3a7b4-41f2-4c63-9a3e-6f0d6d6a2f11"
)

// Counts produced by createEditorTree: ten files in total, of which the
// three configuration files are skipped by a default sweep and three
// state database rows match the plugin key patterns.
const (
	treeFileCount     = 10
	treeRemovable     = 7
	treeConfigSkipped = 3
	treeStoreRows     = 3
)

// TestSetup holds the test environment setup
type TestSetup struct {
	TempDir     string
	HomeDir     string
	StateBase   string
	PluginHome  string
	ConfigPath  string
	HistoryPath string
}

// setupTestEnvironment creates a temporary test environment with a
// fabricated home directory and a written configuration file.
func setupTestEnvironment(t *testing.T) *TestSetup {
	t.Helper()

	// Create temporary directory
	tempDir, err := os.MkdirTemp("", "vsweep-e2e-test-*")
	require.NoError(t, err)

	homeDir := filepath.Join(tempDir, "home")
	require.NoError(t, os.MkdirAll(homeDir, 0755))

	stateBase := redirectHome(t, homeDir)

	basePath := filepath.Join(tempDir, ".vsweep")
	require.NoError(t, os.MkdirAll(basePath, 0755))
	historyPath := filepath.Join(basePath, "history.yaml")

	// Create test config using the config package
	testConfig := config.Config{
		BasePath:         basePath,
		HistoryFile:      historyPath,
		Editors:          []string{"vscode"},
		PluginHome:       filepath.Join(homeDir, ".augment"),
		Preserve:         []string{"settings.json"},
		StoreKeyPatterns: []string{"%augment%", "%Augment%"},
	}

	configPath := filepath.Join(tempDir, "config.yaml")
	configData, err := yaml.Marshal(testConfig)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, configData, 0644))

	return &TestSetup{
		TempDir:     tempDir,
		HomeDir:     homeDir,
		StateBase:   stateBase,
		PluginHome:  testConfig.PluginHome,
		ConfigPath:  configPath,
		HistoryPath: historyPath,
	}
}

// cleanupTestEnvironment removes the temporary test environment
func cleanupTestEnvironment(t *testing.T, setup *TestSetup) {
	t.Helper()
	if setup != nil && setup.TempDir != "" {
		require.NoError(t, os.RemoveAll(setup.TempDir))
	}
}

// redirectHome points home-derived lookups at homeDir and returns the
// application support directory probed for editor state on this
// platform.
func redirectHome(t *testing.T, homeDir string) string {
	t.Helper()

	t.Setenv("HOME", homeDir)
	switch runtime.GOOS {
	case "windows":
		base := filepath.Join(homeDir, "AppData", "Roaming")
		t.Setenv("USERPROFILE", homeDir)
		t.Setenv("APPDATA", base)
		return base
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support")
	default:
		return filepath.Join(homeDir, ".config")
	}
}

// loadTestConfig loads the written configuration the way the CLI does.
func loadTestConfig(t *testing.T, setup *TestSetup) *config.Config {
	t.Helper()

	cfg, err := config.NewManager(setup.ConfigPath).GetConfig()
	require.NoError(t, err)
	return &cfg
}

// newTestCleaner builds a Cleaner from real components against the
// fabricated environment.
func newTestCleaner(t *testing.T, setup *TestSetup) cleaner.Cleaner {
	t.Helper()

	sweeper, err := cleaner.NewCleaner(cleaner.NewCleanerParams{
		Config:        loadTestConfig(t, setup),
		ConfigManager: config.NewManager(setup.ConfigPath),
	})
	require.NoError(t, err)
	return sweeper
}

// reconfigureEditors rewrites the configuration with a different editor list.
func reconfigureEditors(t *testing.T, setup *TestSetup, editors ...string) {
	t.Helper()

	manager := config.NewManager(setup.ConfigPath)
	cfg, err := manager.GetConfig()
	require.NoError(t, err)
	cfg.Editors = editors
	require.NoError(t, manager.SaveConfig(cfg))
}

// editorTree records the notable paths of one fabricated editor state tree.
type editorTree struct {
	AppDir        string
	GlobalStorage string
	StorageJSON   string
	GlobalDB      string
	WorkspaceDB   string
}

// createEditorTree fabricates a realistic state tree for one editor
// application directory under the platform state base: a storage config
// with telemetry identifiers, global and per-workspace state databases,
// chat transcripts, caches and logs.
func createEditorTree(t *testing.T, setup *TestSetup, dirName string) editorTree {
	t.Helper()

	appDir := filepath.Join(setup.StateBase, dirName)
	globalStorage := filepath.Join(appDir, "User", "globalStorage")
	workspaceStorage := filepath.Join(appDir, "User", "workspaceStorage")

	tree := editorTree{
		AppDir:        appDir,
		GlobalStorage: globalStorage,
		StorageJSON:   filepath.Join(globalStorage, "storage.json"),
		GlobalDB:      filepath.Join(globalStorage, "state.vscdb"),
		WorkspaceDB:   filepath.Join(workspaceStorage, "a1b2c3", "state.vscdb"),
	}

	writeStorageJSON(t, tree.StorageJSON, originalMachineID, originalDevDeviceID)
	createStateDB(t, tree.GlobalDB, map[string]string{
		"augmentcode.augment/session": "s1",
		"Augment.vscode-augment.auth": "s2",
		"workbench.panel.pinned":      "p",
	})
	createStateDB(t, tree.WorkspaceDB, map[string]string{
		"memento/augment-panel": "m",
		"editor.fontSize":       "14",
	})

	writeFile(t, filepath.Join(globalStorage, "augmentcode.augment", "chats", "session-1.json"), "chat transcript")
	writeFile(t, filepath.Join(globalStorage, "augmentcode.augment", "kv-store", "records.bin"), "kv records")
	writeFile(t, filepath.Join(workspaceStorage, "a1b2c3", "workspace.json"), `{"folder":"file:///tmp/project"}`)
	writeFile(t, filepath.Join(appDir, "Cache", "index.bin"), "cache payload")
	writeFile(t, filepath.Join(appDir, "GPUCache", "data_0"), "gpu shader blob")
	writeFile(t, filepath.Join(appDir, "logs", "main.log"), "log line")
	writeFile(t, filepath.Join(appDir, "logs", "window1", "renderer.log"), "renderer log line")

	return tree
}

// createPluginHome fabricates the plugin's local environment directory:
// a session file, a completion cache and a preserved settings file.
func createPluginHome(t *testing.T, setup *TestSetup) {
	t.Helper()

	writeFile(t, filepath.Join(setup.PluginHome, "session.json"), `{"token":"abc"}`)
	writeFile(t, filepath.Join(setup.PluginHome, "cache", "completions.bin"), "completion cache")
	writeFile(t, filepath.Join(setup.PluginHome, "settings.json"), `{"keep":"me"}`)
}

// writeFile writes content to path, creating parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// writeStorageJSON plants a storage config with the given telemetry
// identifiers plus an unrelated key that rewrites must not touch.
func writeStorageJSON(t *testing.T, path, machineID, devDeviceID string) {
	t.Helper()

	doc := map[string]any{
		"telemetry.machineId":   machineID,
		"telemetry.devDeviceId": devDeviceID,
		"windowControlHeight":   float64(28),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// readStorageJSON parses a storage config back into a generic document.
func readStorageJSON(t *testing.T, path string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

// createStateDB builds a state.vscdb lookalike with the given keys.
func createStateDB(t *testing.T, path string, keys map[string]string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE ItemTable (key TEXT UNIQUE ON CONFLICT REPLACE, value BLOB)`)
	require.NoError(t, err)

	for key, value := range keys {
		_, err = db.Exec(`INSERT INTO ItemTable (key, value) VALUES (?, ?)`, key, value)
		require.NoError(t, err)
	}
}

// countAllRows returns the total number of rows in a state database.
func countAllRows(t *testing.T, path string) int64 {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int64
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM ItemTable`).Scan(&count))
	return count
}

// readHistory reads and parses the history file. A missing file yields
// an empty history.
func readHistory(t *testing.T, setup *TestSetup) report.History {
	t.Helper()

	data, err := os.ReadFile(setup.HistoryPath)
	if err != nil {
		return report.History{}
	}

	var history report.History
	require.NoError(t, yaml.Unmarshal(data, &history))
	return history
}
