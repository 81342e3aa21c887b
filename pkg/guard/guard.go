// Package guard validates that destructive operations stay inside a declared root.
package guard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vsweep/vsweep/pkg/fs"
	"github.com/vsweep/vsweep/pkg/preserve"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=guard.go -destination=mocks/guard.gen.go -package=mocks

// Guard decides whether a path may be removed or rewritten under a
// declared root. Decisions depend only on the arguments and the file
// system; a Guard holds no mutable state.
type Guard interface {
	// Check returns nil when path is safe to mutate under declaredRoot.
	// It returns ErrPathOutsideRoot, ErrProtectedPath or
	// ErrPreservedPath (wrapped with detail) when the path is rejected.
	Check(path, declaredRoot string) error

	// IsSafe reports whether Check would return nil.
	IsSafe(path, declaredRoot string) bool
}

type realGuard struct {
	fs           fs.FS
	denyList     []string
	preservation preserve.PreservationSet
}

// NewGuardParams contains parameters for creating a new Guard.
type NewGuardParams struct {
	FS fs.FS

	// ProtectedPaths are extra deny-list entries from configuration.
	ProtectedPaths []string

	// Preservation is the set of patterns that must never be mutated.
	Preservation preserve.PreservationSet
}

// NewGuard creates a new Guard with its deny list resolved.
func NewGuard(params NewGuardParams) (Guard, error) {
	g := &realGuard{
		fs:           params.FS,
		preservation: params.Preservation,
	}

	denyList, err := g.buildDenyList(params.ProtectedPaths)
	if err != nil {
		return nil, err
	}
	g.denyList = denyList

	return g, nil
}

// Check validates path against declaredRoot. The checks run in order:
// canonicalize both inputs, require descendancy, reject deny-list
// hits, reject preservation matches.
func (g *realGuard) Check(path, declaredRoot string) error {
	canonPath, err := g.canonicalize(path)
	if err != nil {
		return fmt.Errorf("failed to canonicalize %s: %w", path, err)
	}

	canonRoot, err := g.canonicalize(declaredRoot)
	if err != nil {
		return fmt.Errorf("failed to canonicalize root %s: %w", declaredRoot, err)
	}

	if !isStrictDescendant(canonRoot, canonPath) {
		return fmt.Errorf("%w: %s is not inside %s", ErrPathOutsideRoot, canonPath, canonRoot)
	}

	for _, denied := range g.denyList {
		if isSelfOrAncestor(canonPath, denied) {
			return fmt.Errorf("%w: %s covers %s", ErrProtectedPath, canonPath, denied)
		}
	}

	if g.preservation.Matches(canonPath) {
		return fmt.Errorf("%w: %s", ErrPreservedPath, canonPath)
	}

	return nil
}

// IsSafe reports whether Check would return nil.
func (g *realGuard) IsSafe(path, declaredRoot string) bool {
	return g.Check(path, declaredRoot) == nil
}

// canonicalize makes path absolute and resolves symbolic links. When
// the path does not exist, the nearest existing ancestor is resolved
// and the remaining components are appended unresolved.
func (g *realGuard) canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := g.fs.EvalSymlinks(abs)
	if err == nil {
		return filepath.Clean(resolved), nil
	}
	if !g.fs.IsNotExist(err) {
		return "", err
	}

	var suffix []string
	current := abs
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return filepath.Clean(abs), nil
		}
		suffix = append([]string{filepath.Base(current)}, suffix...)
		current = parent

		resolved, err := g.fs.EvalSymlinks(current)
		if err == nil {
			parts := append([]string{resolved}, suffix...)
			return filepath.Clean(filepath.Join(parts...)), nil
		}
		if !g.fs.IsNotExist(err) {
			return "", err
		}
	}
}

// buildDenyList canonicalizes the built-in system paths, the user's
// home directory and its common subdirectories, and any configured
// extras. Entries that cannot be canonicalized are kept in cleaned
// absolute form rather than dropped.
func (g *realGuard) buildDenyList(extra []string) ([]string, error) {
	home, err := g.fs.GetHomeDir()
	if err != nil {
		return nil, err
	}

	entries := systemDenyPaths()
	entries = append(entries,
		home,
		filepath.Join(home, "Desktop"),
		filepath.Join(home, "Documents"),
		filepath.Join(home, "Downloads"),
	)
	entries = append(entries, extra...)

	denyList := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry) == "" {
			continue
		}

		canon, err := g.canonicalize(entry)
		if err != nil {
			abs, absErr := filepath.Abs(entry)
			if absErr != nil {
				continue
			}
			canon = filepath.Clean(abs)
		}

		if _, ok := seen[canon]; ok {
			continue
		}
		seen[canon] = struct{}{}
		denyList = append(denyList, canon)
	}

	return denyList, nil
}

// isStrictDescendant reports whether path lies inside root. A path
// equal to root is not a descendant.
func isStrictDescendant(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isSelfOrAncestor reports whether target equals path or lies inside
// it. Comparison is by path component, never by substring.
func isSelfOrAncestor(path, target string) bool {
	rel, err := filepath.Rel(path, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
