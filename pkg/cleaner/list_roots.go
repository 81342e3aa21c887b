package cleaner

import (
	"fmt"

	"github.com/vsweep/vsweep/pkg/cleaner/consts"
	"github.com/vsweep/vsweep/pkg/editor"
)

// ListRoots returns the existing state roots for the given editors,
// with the plugin home appended when it exists on disk. An empty editor
// list means every configured editor.
func (c *realCleaner) ListRoots(editors []editor.Variant) ([]editor.EnvironmentRoot, error) {
	// Prepare parameters for hooks
	hookParams := map[string]interface{}{
		"editors": variantNames(editors),
	}

	// Execute with hooks
	return c.executeWithHooksAndReturnRoots(consts.ListRoots, hookParams, func() ([]editor.EnvironmentRoot, error) {
		return c.listRoots(editors)
	})
}

// listRoots performs the actual root discovery.
func (c *realCleaner) listRoots(editors []editor.Variant) ([]editor.EnvironmentRoot, error) {
	variants, err := c.resolveVariants(editors)
	if err != nil {
		return nil, err
	}

	osFamily := editor.CurrentOS()
	var roots []editor.EnvironmentRoot
	seen := make(map[string]bool)

	for _, variant := range variants {
		variantRoots, err := c.locator.Locate(variant, osFamily)
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

	pluginHome, err := c.locator.PluginHome()
	if err != nil {
		return nil, fmt.Errorf("failed to locate plugin home: %w", err)
	}
	if pluginHome.Exists && !seen[pluginHome.Path] {
		roots = append(roots, pluginHome)
	}
	return roots, nil
}

// resolveVariants falls back to the configured editors when the caller
// names none.
func (c *realCleaner) resolveVariants(editors []editor.Variant) ([]editor.Variant, error) {
	if len(editors) > 0 {
		return editors, nil
	}

	variants := make([]editor.Variant, 0, len(c.config.Editors))
	for _, name := range c.config.Editors {
		variant, err := editor.ParseVariant(name)
		if err != nil {
			return nil, fmt.Errorf("configured editor %q: %w", name, err)
		}
		variants = append(variants, variant)
	}
	return variants, nil
}

// variantNames converts variants to plain strings for hook parameters.
func variantNames(editors []editor.Variant) []string {
	names := make([]string, 0, len(editors))
	for _, v := range editors {
		names = append(names, string(v))
	}
	return names
}
