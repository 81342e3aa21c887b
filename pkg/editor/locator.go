package editor

import (
	"fmt"
	"path/filepath"

	"github.com/vsweep/vsweep/pkg/fs"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=locator.go -destination=mocks/locator.gen.go -package=mocks

// Locator resolves editor variants to their on-disk state roots.
type Locator interface {
	// Locate returns the existing, readable state roots for a variant.
	// Unknown variant or OS combinations yield an empty slice, not an error.
	Locate(variant Variant, osFamily OSFamily) ([]EnvironmentRoot, error)

	// LocateAll returns the existing state roots for every known variant.
	LocateAll(osFamily OSFamily) ([]EnvironmentRoot, error)

	// Candidates returns every probed root for a variant, including those
	// that do not exist on disk (Exists marks the difference).
	Candidates(variant Variant, osFamily OSFamily) ([]EnvironmentRoot, error)

	// PluginHome resolves the plugin's dedicated local environment root
	// under the user's home directory.
	PluginHome() (EnvironmentRoot, error)
}

type realLocator struct {
	fs         fs.FS
	pluginHome string
}

// NewLocatorParams contains parameters for creating a new Locator instance.
type NewLocatorParams struct {
	FS fs.FS
	// PluginHome overrides the default ~/.augment location when non-empty.
	PluginHome string
}

// NewLocator creates a new Locator instance.
func NewLocator(params NewLocatorParams) Locator {
	return &realLocator{
		fs:         params.FS,
		pluginHome: params.PluginHome,
	}
}

// Locate returns the existing, readable state roots for a variant.
func (l *realLocator) Locate(variant Variant, osFamily OSFamily) ([]EnvironmentRoot, error) {
	candidates, err := l.Candidates(variant, osFamily)
	if err != nil {
		return nil, err
	}

	roots := make([]EnvironmentRoot, 0, len(candidates))
	for _, root := range candidates {
		if root.Exists {
			roots = append(roots, root)
		}
	}
	return roots, nil
}

// LocateAll returns the existing state roots for every known variant.
func (l *realLocator) LocateAll(osFamily OSFamily) ([]EnvironmentRoot, error) {
	var roots []EnvironmentRoot
	seen := make(map[string]bool)

	for _, variant := range KnownVariants() {
		variantRoots, err := l.Locate(variant, osFamily)
		if err != nil {
			return nil, fmt.Errorf("failed to locate roots for %s: %w", variant, err)
		}
		for _, root := range variantRoots {
			// code-oss and oss resolve to the same directory; report it once.
			if seen[root.Path] {
				continue
			}
			seen[root.Path] = true
			roots = append(roots, root)
		}
	}
	return roots, nil
}

// Candidates returns every probed root for a variant, existing or not.
func (l *realLocator) Candidates(variant Variant, osFamily OSFamily) ([]EnvironmentRoot, error) {
	dirName, known := variantDirNames[variant]
	if !known {
		return nil, nil
	}

	homeDir, err := l.fs.GetHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	base, err := appSupportDir(osFamily, homeDir)
	if err != nil {
		// Unknown OS is expected and non-fatal: no roots to report.
		return nil, nil
	}

	appDir := filepath.Join(base, dirName)
	roots := make([]EnvironmentRoot, 0, len(rootTemplates))
	for _, tmpl := range rootTemplates {
		path := filepath.Join(append([]string{appDir}, tmpl.rel...)...)
		exists, err := l.probeDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to probe %s: %w", path, err)
		}
		roots = append(roots, EnvironmentRoot{
			Variant: variant,
			OS:      osFamily,
			Path:    path,
			Kind:    tmpl.kind,
			Exists:  exists,
		})
	}
	return roots, nil
}

// PluginHome resolves the plugin's dedicated local environment root.
func (l *realLocator) PluginHome() (EnvironmentRoot, error) {
	path := l.pluginHome
	if path == "" {
		homeDir, err := l.fs.GetHomeDir()
		if err != nil {
			return EnvironmentRoot{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, defaultPluginHomeName)
	}

	exists, err := l.probeDir(path)
	if err != nil {
		return EnvironmentRoot{}, fmt.Errorf("failed to probe %s: %w", path, err)
	}

	return EnvironmentRoot{
		OS:     CurrentOS(),
		Path:   path,
		Kind:   RootPluginHome,
		Exists: exists,
	}, nil
}

// probeDir reports whether path exists and is a readable directory.
func (l *realLocator) probeDir(path string) (bool, error) {
	exists, err := l.fs.Exists(path)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	isDir, err := l.fs.IsDir(path)
	if err != nil {
		return false, err
	}
	if !isDir {
		return false, nil
	}

	// Readability check: listing must succeed for the scanner to work.
	if _, err := l.fs.ReadDir(path); err != nil {
		if l.fs.IsPermission(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
