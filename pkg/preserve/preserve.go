// Package preserve implements the preservation set that protects files from removal.
package preserve

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultPatterns returns the preservation patterns applied when the
// caller supplies none.
func DefaultPatterns() []string {
	return []string{"settings.json"}
}

// PreservationSet is an immutable set of basenames and glob patterns.
// A path matching any pattern is never removed.
type PreservationSet struct {
	patterns []string
}

// New creates a PreservationSet from the given patterns. Empty input
// yields the default set. Invalid glob patterns are rejected.
func New(patterns []string) (PreservationSet, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}

	cleaned := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			return PreservationSet{}, fmt.Errorf("%w: blank pattern", ErrInvalidPattern)
		}
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return PreservationSet{}, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
		cleaned = append(cleaned, pattern)
	}

	return PreservationSet{patterns: cleaned}, nil
}

// MustDefault returns the default PreservationSet.
func MustDefault() PreservationSet {
	set, err := New(nil)
	if err != nil {
		panic(err)
	}
	return set
}

// Matches reports whether path matches any preservation pattern.
// Patterns without a separator match the entry's basename; patterns
// with separators match against the slash-normalized full path.
func (s PreservationSet) Matches(path string) bool {
	base := filepath.Base(path)
	slashPath := filepath.ToSlash(path)

	for _, pattern := range s.patterns {
		if strings.ContainsRune(pattern, '/') {
			if ok, _ := filepath.Match(pattern, slashPath); ok {
				return true
			}
			continue
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the configured patterns.
func (s PreservationSet) Patterns() []string {
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}
