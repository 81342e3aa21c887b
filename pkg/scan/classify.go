package scan

import (
	"path/filepath"
	"strings"

	"github.com/vsweep/vsweep/pkg/editor"
)

// Segment and basename tables for kind classification. Lookups are
// case-insensitive because macOS and Windows file systems usually are.
var (
	chatSegments = newSegmentSet(
		"chat",
		"chats",
		"conversations",
		"chatSessions",
		"chatEditingSessions",
		"augment-chat",
		"workspace-chat",
	)

	extensionCacheSegments = newSegmentSet(
		"CachedExtensions",
		"CachedExtensionVSIXs",
	)

	workspaceSegments = newSegmentSet(
		"workspaceStorage",
	)

	cacheSegments = newSegmentSet(
		"Cache",
		"CachedData",
		"CachedProfilesData",
		"Code Cache",
		"GPUCache",
		"DawnGraphiteCache",
		"DawnWebGPUCache",
		"ShaderCache",
		"blob_storage",
		"Local Storage",
		"Session Storage",
		"WebStorage",
	)

	logSegments = newSegmentSet(
		"logs",
		"Crashpad",
		"CrashDumps",
	)

	tempSegments = newSegmentSet(
		"tmp",
		"temp",
	)

	configBasenames = newSegmentSet(
		"settings.json",
		"keybindings.json",
		"storage.json",
		"state.vscdb",
		"machineid",
	)
)

func newSegmentSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}

// classifyKind maps a file to a Kind. Segments of the path relative to
// the root are matched against the tables above, most specific kind
// first; files matching nothing inherit a default from the root kind.
func classifyKind(root editor.EnvironmentRoot, path string) Kind {
	segments := relativeSegments(root.Path, path)
	base := strings.ToLower(filepath.Base(path))

	switch {
	case hasSegment(segments, chatSegments):
		return KindChatHistory
	case contains(configBasenames, base):
		return KindConfig
	case hasSegment(segments, extensionCacheSegments):
		return KindExtensionCache
	case hasSegment(segments, workspaceSegments):
		return KindWorkspaceStorage
	case hasSegment(segments, cacheSegments):
		return KindCache
	case hasSegment(segments, logSegments), strings.HasSuffix(base, ".log"):
		return KindLog
	case hasSegment(segments, tempSegments),
		strings.HasSuffix(base, ".tmp"),
		strings.HasSuffix(base, ".temp"):
		return KindTempFile
	default:
		return rootKindFallback(root.Kind)
	}
}

// relativeSegments returns the root's own directory name followed by
// the path components of path below rootPath. Components above the
// root are excluded so that directory names in the user's home path
// cannot influence classification; the root's basename is kept because
// roots like Cache or CachedExtensions carry their meaning there.
func relativeSegments(rootPath, path string) []string {
	rel, err := filepath.Rel(rootPath, path)
	if err != nil {
		rel = path
	}
	segments := []string{filepath.Base(rootPath)}
	return append(segments, strings.Split(filepath.ToSlash(rel), "/")...)
}

func hasSegment(segments []string, set map[string]struct{}) bool {
	for _, segment := range segments {
		if contains(set, strings.ToLower(segment)) {
			return true
		}
	}
	return false
}

func contains(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}

// rootKindFallback assigns a kind from the nature of the root when no
// path segment matched. Cache and log roots contain opaque file names
// that carry no hint of their own.
func rootKindFallback(kind editor.RootKind) Kind {
	switch kind {
	case editor.RootCache:
		return KindCache
	case editor.RootLogs:
		return KindLog
	case editor.RootWorkspaceStorage:
		return KindWorkspaceStorage
	default:
		return KindUnknown
	}
}
