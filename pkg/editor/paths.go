package editor

import "path/filepath"

// StorageConfigPath returns the path of the JSON storage config inside a
// globalStorage root. The boolean is false for other root kinds.
func StorageConfigPath(root EnvironmentRoot) (string, bool) {
	if root.Kind != RootGlobalStorage {
		return "", false
	}
	return filepath.Join(root.Path, "storage.json"), true
}

// GlobalStatePath returns the path of the global state database inside a
// globalStorage root. The boolean is false for other root kinds.
func GlobalStatePath(root EnvironmentRoot) (string, bool) {
	if root.Kind != RootGlobalStorage {
		return "", false
	}
	return filepath.Join(root.Path, "state.vscdb"), true
}

// WorkspaceStateGlob returns the glob matching per-workspace state
// databases inside a workspaceStorage root. The boolean is false for
// other root kinds.
func WorkspaceStateGlob(root EnvironmentRoot) (string, bool) {
	if root.Kind != RootWorkspaceStorage {
		return "", false
	}
	return filepath.Join(root.Path, "*", "state.vscdb"), true
}
