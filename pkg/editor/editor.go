// Package editor resolves the on-disk state locations of supported code editors.
package editor

import (
	"fmt"
	"runtime"
	"strings"
)

// Variant identifies a supported editor variant.
type Variant string

// Supported editor variants.
const (
	VariantVSCode     Variant = "vscode"
	VariantCursor     Variant = "cursor"
	VariantWindsurf   Variant = "windsurf"
	VariantVSCodium   Variant = "vscodium"
	VariantCodeOSS    Variant = "code-oss"
	VariantGenericOSS Variant = "oss"
)

// OSFamily identifies an operating system family.
type OSFamily string

// Supported operating system families.
const (
	OSWindows OSFamily = "windows"
	OSMacOS   OSFamily = "darwin"
	OSLinux   OSFamily = "linux"
)

// RootKind classifies what a located root contains.
type RootKind string

// Root kinds emitted by the locator.
const (
	RootGlobalStorage    RootKind = "globalStorage"
	RootWorkspaceStorage RootKind = "workspaceStorage"
	RootCache            RootKind = "cache"
	RootLogs             RootKind = "logs"
	RootPluginHome       RootKind = "pluginHome"
)

// EnvironmentRoot is a candidate state directory for one editor variant.
// Roots are produced by the Locator and read-only afterward.
type EnvironmentRoot struct {
	Variant Variant
	OS      OSFamily
	Path    string
	Kind    RootKind
	Exists  bool
}

// KnownVariants returns all supported editor variants in display order.
func KnownVariants() []Variant {
	return []Variant{
		VariantVSCode,
		VariantCursor,
		VariantWindsurf,
		VariantVSCodium,
		VariantCodeOSS,
		VariantGenericOSS,
	}
}

// ParseVariant converts a user-supplied name into a known Variant.
func ParseVariant(name string) (Variant, error) {
	normalized := Variant(strings.ToLower(strings.TrimSpace(name)))
	for _, v := range KnownVariants() {
		if normalized == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedEditor, name)
}

// ParseOSFamily converts a GOOS-style name into a known OSFamily.
func ParseOSFamily(name string) (OSFamily, error) {
	switch OSFamily(strings.ToLower(strings.TrimSpace(name))) {
	case OSWindows:
		return OSWindows, nil
	case OSMacOS:
		return OSMacOS, nil
	case OSLinux:
		return OSLinux, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedOS, name)
	}
}

// CurrentOS returns the OSFamily of the running system.
func CurrentOS() OSFamily {
	return OSFamily(runtime.GOOS)
}
