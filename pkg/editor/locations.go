package editor

import (
	"os"
	"path/filepath"
)

// variantDirNames maps each known variant to its application directory name
// under the platform's application support directory.
var variantDirNames = map[Variant]string{
	VariantVSCode:     "Code",
	VariantCursor:     "Cursor",
	VariantWindsurf:   "Windsurf",
	VariantVSCodium:   "VSCodium",
	VariantCodeOSS:    "Code - OSS",
	VariantGenericOSS: "Code - OSS",
}

// rootTemplate describes one state location relative to a variant's
// application directory.
type rootTemplate struct {
	kind RootKind
	rel  []string
}

// rootTemplates is the declarative (variant-independent) list of state
// locations probed for every variant. Adding a location means extending
// this table, not adding branching logic.
var rootTemplates = []rootTemplate{
	{RootGlobalStorage, []string{"User", "globalStorage"}},
	{RootWorkspaceStorage, []string{"User", "workspaceStorage"}},
	{RootCache, []string{"Cache"}},
	{RootCache, []string{"CachedData"}},
	{RootCache, []string{"CachedExtensions"}},
	{RootCache, []string{"CachedExtensionVSIXs"}},
	{RootCache, []string{"Code Cache"}},
	{RootCache, []string{"GPUCache"}},
	{RootCache, []string{"DawnGraphiteCache"}},
	{RootCache, []string{"DawnWebGPUCache"}},
	{RootLogs, []string{"logs"}},
	{RootLogs, []string{"Crashpad"}},
}

// appSupportDir returns the platform application support directory that
// hosts editor state, resolved against the given home directory.
func appSupportDir(osFamily OSFamily, homeDir string) (string, error) {
	switch osFamily {
	case OSWindows:
		if appData := os.Getenv("APPDATA"); appData != "" {
			return appData, nil
		}
		return filepath.Join(homeDir, "AppData", "Roaming"), nil
	case OSMacOS:
		return filepath.Join(homeDir, "Library", "Application Support"), nil
	case OSLinux:
		return filepath.Join(homeDir, ".config"), nil
	default:
		return "", ErrUnsupportedOS
	}
}

// defaultPluginHomeName is the well-known directory of the plugin's local
// environment under the user's home directory.
const defaultPluginHomeName = ".augment"
