//go:build integration

package scan

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/fs"
	"github.com/vsweep/vsweep/pkg/preserve"
)

func writeSized(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
}

func newIntegrationScanner() Scanner {
	return NewScanner(NewScannerParams{FS: fs.NewFS()})
}

func entryByPath(entries []FileEntry, path string) (FileEntry, bool) {
	for _, e := range entries {
		if e.Path == path {
			return e, true
		}
	}
	return FileEntry{}, false
}

func TestScan_GlobalStorageTree(t *testing.T) {
	tmpDir := t.TempDir()
	rootPath := filepath.Join(tmpDir, "User", "globalStorage")

	storageJSON := filepath.Join(rootPath, "storage.json")
	stateDB := filepath.Join(rootPath, "state.vscdb")
	chatFile := filepath.Join(rootPath, "vendor.ext", "chat", "session-1.json")
	junk := filepath.Join(rootPath, "junk.bin")

	writeSized(t, storageJSON, 50)
	writeSized(t, stateDB, 1000)
	writeSized(t, chatFile, 200)
	writeSized(t, junk, 10)

	root := editor.EnvironmentRoot{
		Variant: editor.VariantVSCode,
		OS:      editor.CurrentOS(),
		Path:    rootPath,
		Kind:    editor.RootGlobalStorage,
		Exists:  true,
	}

	entries, err := newIntegrationScanner().Scan(root, preserve.MustDefault())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	wantKinds := map[string]Kind{
		storageJSON: KindConfig,
		stateDB:     KindConfig,
		chatFile:    KindChatHistory,
		junk:        KindUnknown,
	}
	wantSizes := map[string]int64{
		storageJSON: 50,
		stateDB:     1000,
		chatFile:    200,
		junk:        10,
	}

	for path, kind := range wantKinds {
		entry, ok := entryByPath(entries, path)
		require.True(t, ok, "missing entry for %s", path)
		assert.Equal(t, kind, entry.Kind, path)
		assert.Equal(t, wantSizes[path], entry.SizeBytes, path)
		assert.Equal(t, ClassificationRemovable, entry.Classification, path)
	}
}

func TestScan_PreservationDrivesSavingsAccounting(t *testing.T) {
	tmpDir := t.TempDir()
	rootPath := filepath.Join(tmpDir, "User", "globalStorage")

	writeSized(t, filepath.Join(rootPath, "a.bin"), 50)
	writeSized(t, filepath.Join(rootPath, "state.vscdb"), 1000)
	writeSized(t, filepath.Join(rootPath, "b.bin"), 200)

	root := editor.EnvironmentRoot{
		Variant: editor.VariantVSCode,
		OS:      editor.CurrentOS(),
		Path:    rootPath,
		Kind:    editor.RootGlobalStorage,
		Exists:  true,
	}

	set, err := preserve.New([]string{"state.vscdb"})
	require.NoError(t, err)

	entries, err := newIntegrationScanner().Scan(root, set)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var removableBytes int64
	var preservedCount int
	for _, entry := range entries {
		switch entry.Classification {
		case ClassificationRemovable:
			removableBytes += entry.SizeBytes
		case ClassificationPreserve:
			preservedCount++
		}
	}

	assert.Equal(t, int64(250), removableBytes)
	assert.Equal(t, 1, preservedCount)
}

func TestScan_CacheRootFallback(t *testing.T) {
	tmpDir := t.TempDir()
	rootPath := filepath.Join(tmpDir, "Cache")

	writeSized(t, filepath.Join(rootPath, "data_0"), 100)
	writeSized(t, filepath.Join(rootPath, "index"), 20)
	writeSized(t, filepath.Join(rootPath, "nested", "f_000012"), 30)

	root := editor.EnvironmentRoot{
		Variant: editor.VariantCursor,
		OS:      editor.CurrentOS(),
		Path:    rootPath,
		Kind:    editor.RootCache,
		Exists:  true,
	}

	entries, err := newIntegrationScanner().Scan(root, preserve.MustDefault())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for _, entry := range entries {
		assert.Equal(t, KindCache, entry.Kind, entry.Path)
	}
}

func TestScan_WorkspaceStorageTree(t *testing.T) {
	tmpDir := t.TempDir()
	rootPath := filepath.Join(tmpDir, "User", "workspaceStorage")

	stateDB := filepath.Join(rootPath, "1a2b3c", "state.vscdb")
	workspaceJSON := filepath.Join(rootPath, "1a2b3c", "workspace.json")
	chatSession := filepath.Join(rootPath, "1a2b3c", "chatSessions", "one.json")

	writeSized(t, stateDB, 10)
	writeSized(t, workspaceJSON, 10)
	writeSized(t, chatSession, 10)

	root := editor.EnvironmentRoot{
		Variant: editor.VariantVSCode,
		OS:      editor.CurrentOS(),
		Path:    rootPath,
		Kind:    editor.RootWorkspaceStorage,
		Exists:  true,
	}

	entries, err := newIntegrationScanner().Scan(root, preserve.MustDefault())
	require.NoError(t, err)

	entry, ok := entryByPath(entries, stateDB)
	require.True(t, ok)
	assert.Equal(t, KindConfig, entry.Kind)

	entry, ok = entryByPath(entries, workspaceJSON)
	require.True(t, ok)
	assert.Equal(t, KindWorkspaceStorage, entry.Kind)

	entry, ok = entryByPath(entries, chatSession)
	require.True(t, ok)
	assert.Equal(t, KindChatHistory, entry.Kind)
}

func TestScan_SymlinksAreNotFollowed(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires elevated privileges on windows")
	}

	tmpDir := t.TempDir()
	rootPath := filepath.Join(tmpDir, "root")
	outside := filepath.Join(tmpDir, "outside")

	writeSized(t, filepath.Join(outside, "huge.bin"), 4096)
	require.NoError(t, os.MkdirAll(rootPath, 0755))
	require.NoError(t, os.Symlink(outside, filepath.Join(rootPath, "link")))

	root := editor.EnvironmentRoot{
		Variant: editor.VariantVSCode,
		OS:      editor.CurrentOS(),
		Path:    rootPath,
		Kind:    editor.RootGlobalStorage,
		Exists:  true,
	}

	entries, err := newIntegrationScanner().Scan(root, preserve.MustDefault())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// Only the link itself is listed, never the target's contents.
	assert.Equal(t, filepath.Join(rootPath, "link"), entries[0].Path)
	assert.Less(t, entries[0].SizeBytes, int64(4096))
}
