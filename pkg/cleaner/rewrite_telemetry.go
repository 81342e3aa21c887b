package cleaner

import (
	"errors"
	"fmt"

	"github.com/vsweep/vsweep/pkg/cleaner/consts"
	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/telemetry"
)

// RewriteTelemetry regenerates the telemetry identifiers in every
// existing storage config of the variant.
func (c *realCleaner) RewriteTelemetry(variant editor.Variant) ([]telemetry.Rewrite, error) {
	// Prepare parameters for hooks
	hookParams := map[string]interface{}{
		"editor": string(variant),
	}

	// Execute with hooks
	return c.executeWithHooksAndReturnRewrites(consts.RewriteTelemetry, hookParams, func() ([]telemetry.Rewrite, error) {
		return c.rewriteTelemetry(variant)
	})
}

// rewriteTelemetry performs the actual identifier rewrite.
func (c *realCleaner) rewriteTelemetry(variant editor.Variant) ([]telemetry.Rewrite, error) {
	roots, err := c.locator.Locate(variant, editor.CurrentOS())
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s roots: %w", variant, err)
	}

	var rewrites []telemetry.Rewrite
	for _, root := range roots {
		configPath, ok := editor.StorageConfigPath(root)
		if !ok {
			continue
		}

		rewrite, err := c.telemetry.RewriteIDs(configPath)
		if errors.Is(err, telemetry.ErrConfigNotFound) {
			continue
		}
		if err != nil {
			return rewrites, err
		}
		rewrites = append(rewrites, rewrite)
		c.VerbosePrint("Rewrote telemetry identifiers in %s", configPath)
	}

	if len(rewrites) == 0 {
		return nil, fmt.Errorf("%w: no storage config for %s", telemetry.ErrConfigNotFound, variant)
	}
	return rewrites, nil
}
