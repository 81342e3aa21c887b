// Package scan enumerates and classifies the files inside located editor roots.
package scan

import (
	"fmt"
	iofs "io/fs"

	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/fs"
	"github.com/vsweep/vsweep/pkg/logger"
	"github.com/vsweep/vsweep/pkg/preserve"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=scan.go -destination=mocks/scanner.gen.go -package=mocks

// Kind describes what a scanned file is.
type Kind string

// File kinds assigned by the classifier.
const (
	KindCache            Kind = "cache"
	KindLog              Kind = "log"
	KindTempFile         Kind = "tempFile"
	KindWorkspaceStorage Kind = "workspaceStorage"
	KindChatHistory      Kind = "chatHistory"
	KindExtensionCache   Kind = "extensionCache"
	KindConfig           Kind = "config"
	KindUnknown          Kind = "unknown"
)

// Classification decides what the executor may do with a file.
type Classification string

// Classifications assigned during a scan.
const (
	ClassificationPreserve  Classification = "preserve"
	ClassificationRemovable Classification = "removable"
)

// FileEntry is one file found under an environment root.
type FileEntry struct {
	Path           string
	SizeBytes      int64
	Kind           Kind
	Classification Classification
}

// Scanner enumerates files under environment roots.
type Scanner interface {
	// Scan walks root and returns an entry for every regular file and
	// symbolic link found. Symbolic links are never followed. Each
	// call performs a fresh enumeration, so a failed scan is retried
	// by calling Scan again.
	Scan(root editor.EnvironmentRoot, preservation preserve.PreservationSet) ([]FileEntry, error)
}

type realScanner struct {
	fs     fs.FS
	logger logger.Logger
}

// NewScannerParams contains parameters for creating a new Scanner.
type NewScannerParams struct {
	FS     fs.FS
	Logger logger.Logger
}

// NewScanner creates a new Scanner.
func NewScanner(params NewScannerParams) Scanner {
	log := params.Logger
	if log == nil {
		log = logger.NewNoopLogger()
	}

	return &realScanner{
		fs:     params.FS,
		logger: log,
	}
}

// Scan walks root and classifies every file against the preservation
// set. A root that no longer exists yields an empty result. Entries
// that cannot be read are skipped, not fatal.
func (s *realScanner) Scan(root editor.EnvironmentRoot, preservation preserve.PreservationSet) ([]FileEntry, error) {
	exists, err := s.fs.Exists(root.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRootWalk, root.Path, err)
	}
	if !exists {
		return nil, nil
	}

	var entries []FileEntry
	walkErr := s.fs.WalkDir(root.Path, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			s.logger.Logf("skipping unreadable entry %s: %v", path, err)
			if d != nil && d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			s.logger.Logf("skipping entry %s: %v", path, err)
			return nil
		}

		entry := FileEntry{
			Path:           path,
			SizeBytes:      info.Size(),
			Kind:           classifyKind(root, path),
			Classification: ClassificationRemovable,
		}
		if preservation.Matches(path) {
			entry.Classification = ClassificationPreserve
		}

		entries = append(entries, entry)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRootWalk, root.Path, walkErr)
	}

	return entries, nil
}
