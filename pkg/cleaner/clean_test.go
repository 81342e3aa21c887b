//go:build unit

package cleaner

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/guard"
	"github.com/vsweep/vsweep/pkg/report"
	"github.com/vsweep/vsweep/pkg/scan"
	"github.com/vsweep/vsweep/pkg/store"
	"github.com/vsweep/vsweep/pkg/telemetry"
)

func cacheRoot() editor.EnvironmentRoot {
	return editor.EnvironmentRoot{
		Variant: editor.VariantVSCode,
		OS:      editor.CurrentOS(),
		Path:    "/home/user/.config/Code/Cache",
		Kind:    editor.RootCache,
		Exists:  true,
	}
}

func globalStorageRoot() editor.EnvironmentRoot {
	return editor.EnvironmentRoot{
		Variant: editor.VariantVSCode,
		OS:      editor.CurrentOS(),
		Path:    "/home/user/.config/Code/User/globalStorage",
		Kind:    editor.RootGlobalStorage,
		Exists:  true,
	}
}

func workspaceStorageRoot() editor.EnvironmentRoot {
	return editor.EnvironmentRoot{
		Variant: editor.VariantVSCode,
		OS:      editor.CurrentOS(),
		Path:    "/home/user/.config/Code/User/workspaceStorage",
		Kind:    editor.RootWorkspaceStorage,
		Exists:  true,
	}
}

func TestClean_RemovesRemovableAndPreservesConfigured(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	root := cacheRoot()
	entries := []scan.FileEntry{
		{Path: root.Path + "/index.bin", SizeBytes: 50, Kind: scan.KindCache, Classification: scan.ClassificationRemovable},
		{Path: root.Path + "/settings.json", SizeBytes: 1000, Kind: scan.KindConfig, Classification: scan.ClassificationPreserve},
		{Path: root.Path + "/chunk.bin", SizeBytes: 200, Kind: scan.KindCache, Classification: scan.ClassificationRemovable},
	}

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).Return([]editor.EnvironmentRoot{root}, nil)
	m.scanner.EXPECT().Scan(root, gomock.Any()).Return(entries, nil)
	m.guard.EXPECT().Check(root.Path+"/index.bin", root.Path).Return(nil)
	m.guard.EXPECT().Check(root.Path+"/chunk.bin", root.Path).Return(nil)
	m.fs.EXPECT().Remove(root.Path + "/index.bin").Return(nil)
	m.fs.EXPECT().Remove(root.Path + "/chunk.bin").Return(nil)
	m.fs.EXPECT().WalkDir(root.Path, gomock.Any()).Return(nil)

	var recorded report.Run
	m.reporter.EXPECT().Append(gomock.Any()).DoAndReturn(func(run report.Run) error {
		recorded = run
		return nil
	})

	result, err := c.Clean(context.Background(), CleanParams{Editor: "vscode"})
	require.NoError(t, err)

	assert.Equal(t, PhaseCompleted, result.Phase)
	assert.Equal(t, 3, result.TotalScanned)
	assert.Equal(t, 2, result.TotalRemoved)
	assert.Equal(t, 1, result.PreservedCount)
	assert.Equal(t, int64(250), result.BytesFreed)
	assertCounterIdentity(t, result)

	assert.Equal(t, OutcomePreserved, findItem(t, result, root.Path+"/settings.json").Outcome)
	assert.Equal(t, "vscode", recorded.Editor)
	assert.Equal(t, int64(250), recorded.BytesFreed)
	assert.Equal(t, []string{root.Path}, recorded.Roots)
}

func TestClean_FreedBytesSumRemovedSizes(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	root := cacheRoot()
	entries := []scan.FileEntry{
		{Path: root.Path + "/settings.json", SizeBytes: 50, Kind: scan.KindConfig, Classification: scan.ClassificationPreserve},
		{Path: root.Path + "/cache/x.tmp", SizeBytes: 1000, Kind: scan.KindTempFile, Classification: scan.ClassificationRemovable},
		{Path: root.Path + "/logs/a.log", SizeBytes: 200, Kind: scan.KindLog, Classification: scan.ClassificationRemovable},
	}

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).Return([]editor.EnvironmentRoot{root}, nil)
	m.scanner.EXPECT().Scan(root, gomock.Any()).Return(entries, nil)
	m.guard.EXPECT().Check(root.Path+"/cache/x.tmp", root.Path).Return(nil)
	m.guard.EXPECT().Check(root.Path+"/logs/a.log", root.Path).Return(nil)
	m.fs.EXPECT().Remove(root.Path + "/cache/x.tmp").Return(nil)
	m.fs.EXPECT().Remove(root.Path + "/logs/a.log").Return(nil)
	m.fs.EXPECT().WalkDir(root.Path, gomock.Any()).Return(nil)
	m.reporter.EXPECT().Append(gomock.Any()).Return(nil)

	result, err := c.Clean(context.Background(), CleanParams{Editor: "vscode"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRemoved)
	assert.Equal(t, 1, result.PreservedCount)
	assert.Equal(t, int64(1200), result.BytesFreed)
	assertCounterIdentity(t, result)
	assert.Equal(t, OutcomePreserved, findItem(t, result, root.Path+"/settings.json").Outcome)
}

func TestClean_GuardRejectionIsSkipped(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	root := cacheRoot()
	evil := root.Path + "/../../../etc/passwd"
	entries := []scan.FileEntry{
		{Path: evil, SizeBytes: 64, Kind: scan.KindCache, Classification: scan.ClassificationRemovable},
		{Path: root.Path + "/chunk.bin", SizeBytes: 200, Kind: scan.KindCache, Classification: scan.ClassificationRemovable},
	}

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).Return([]editor.EnvironmentRoot{root}, nil)
	m.scanner.EXPECT().Scan(root, gomock.Any()).Return(entries, nil)
	m.guard.EXPECT().Check(evil, root.Path).Return(fmt.Errorf("%w: %s", guard.ErrPathOutsideRoot, evil))
	m.guard.EXPECT().Check(root.Path+"/chunk.bin", root.Path).Return(nil)
	m.fs.EXPECT().Remove(root.Path + "/chunk.bin").Return(nil)
	m.fs.EXPECT().WalkDir(root.Path, gomock.Any()).Return(nil)
	m.reporter.EXPECT().Append(gomock.Any()).Return(nil)

	result, err := c.Clean(context.Background(), CleanParams{Editor: "vscode"})
	require.NoError(t, err)

	assert.Equal(t, PhaseCompleted, result.Phase)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Equal(t, 1, result.TotalRemoved)
	assert.Equal(t, int64(200), result.BytesFreed)
	assertCounterIdentity(t, result)

	item := findItem(t, result, evil)
	assert.Equal(t, OutcomeSkipped, item.Outcome)
	assert.Contains(t, item.Detail, "outside the declared root")
}

func TestClean_DryRunComputesSameCountersWithoutMutation(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	root := cacheRoot()
	entries := []scan.FileEntry{
		{Path: root.Path + "/index.bin", SizeBytes: 50, Kind: scan.KindCache, Classification: scan.ClassificationRemovable},
		{Path: root.Path + "/settings.json", SizeBytes: 1000, Kind: scan.KindConfig, Classification: scan.ClassificationPreserve},
		{Path: root.Path + "/chunk.bin", SizeBytes: 200, Kind: scan.KindCache, Classification: scan.ClassificationRemovable},
	}

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).Return([]editor.EnvironmentRoot{root}, nil)
	m.scanner.EXPECT().Scan(root, gomock.Any()).Return(entries, nil)
	m.guard.EXPECT().Check(root.Path+"/index.bin", root.Path).Return(nil)
	m.guard.EXPECT().Check(root.Path+"/chunk.bin", root.Path).Return(nil)
	// No Remove and no directory pruning: a dry run must not mutate.

	var recorded report.Run
	m.reporter.EXPECT().Append(gomock.Any()).DoAndReturn(func(run report.Run) error {
		recorded = run
		return nil
	})

	result, err := c.Clean(context.Background(), CleanParams{Editor: "vscode", DryRun: true})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, PhaseCompleted, result.Phase)
	assert.Equal(t, 3, result.TotalScanned)
	assert.Equal(t, 2, result.TotalRemoved)
	assert.Equal(t, 1, result.PreservedCount)
	assert.Equal(t, int64(250), result.BytesFreed)
	assertCounterIdentity(t, result)

	assert.True(t, recorded.DryRun)
	assert.Equal(t, int64(250), recorded.BytesFreed)
}

func TestClean_RemovalFailureYieldsPartiallyFailed(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	root := cacheRoot()
	entries := []scan.FileEntry{
		{Path: root.Path + "/index.bin", SizeBytes: 50, Kind: scan.KindCache, Classification: scan.ClassificationRemovable},
		{Path: root.Path + "/settings.json", SizeBytes: 1000, Kind: scan.KindConfig, Classification: scan.ClassificationPreserve},
		{Path: root.Path + "/chunk.bin", SizeBytes: 200, Kind: scan.KindCache, Classification: scan.ClassificationRemovable},
	}

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).Return([]editor.EnvironmentRoot{root}, nil)
	m.scanner.EXPECT().Scan(root, gomock.Any()).Return(entries, nil)
	m.guard.EXPECT().Check(root.Path+"/index.bin", root.Path).Return(nil)
	m.guard.EXPECT().Check(root.Path+"/chunk.bin", root.Path).Return(nil)
	m.fs.EXPECT().Remove(root.Path + "/index.bin").Return(errors.New("permission denied"))
	m.fs.EXPECT().Remove(root.Path + "/chunk.bin").Return(nil)
	m.fs.EXPECT().WalkDir(root.Path, gomock.Any()).Return(nil)
	m.reporter.EXPECT().Append(gomock.Any()).Return(nil)

	result, err := c.Clean(context.Background(), CleanParams{Editor: "vscode"})
	require.NoError(t, err)

	assert.Equal(t, PhasePartiallyFailed, result.Phase)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, 1, result.TotalRemoved)
	assert.Equal(t, int64(200), result.BytesFreed)
	assertCounterIdentity(t, result)

	item := findItem(t, result, root.Path+"/index.bin")
	assert.Equal(t, OutcomeFailed, item.Outcome)
	assert.Contains(t, item.Detail, "permission denied")
}

func TestClean_ConfigFilesAreNotSweptByDefault(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	root := globalStorageRoot()
	entries := []scan.FileEntry{
		{Path: root.Path + "/storage.json", SizeBytes: 4096, Kind: scan.KindConfig, Classification: scan.ClassificationRemovable},
		{Path: root.Path + "/state.vscdb", SizeBytes: 8192, Kind: scan.KindConfig, Classification: scan.ClassificationRemovable},
		{Path: root.Path + "/vendor.extension/junk.bin", SizeBytes: 100, Kind: scan.KindUnknown, Classification: scan.ClassificationRemovable},
	}

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).Return([]editor.EnvironmentRoot{root}, nil)
	m.scanner.EXPECT().Scan(root, gomock.Any()).Return(entries, nil)
	m.guard.EXPECT().Check(root.Path+"/vendor.extension/junk.bin", root.Path).Return(nil)
	m.fs.EXPECT().Remove(root.Path + "/vendor.extension/junk.bin").Return(nil)
	m.fs.EXPECT().WalkDir(root.Path, gomock.Any()).Return(nil)

	// Config files stay on disk so the surgical steps can mutate them.
	m.telemetry.EXPECT().RewriteIDs(root.Path + "/storage.json").Return(telemetry.Rewrite{
		Path: root.Path + "/storage.json",
		Old:  telemetry.IDs{MachineID: "old"},
		New:  telemetry.IDs{MachineID: "new"},
	}, nil)
	m.store.EXPECT().Clean(gomock.Any(), root.Path+"/state.vscdb", []string{"%augment%", "%Augment%"}).
		Return(store.CleanResult{Path: root.Path + "/state.vscdb", TableExists: true, RowsDeleted: 4}, nil)
	m.reporter.EXPECT().Append(gomock.Any()).Return(nil)

	result, err := c.Clean(context.Background(), CleanParams{Editor: "vscode"})
	require.NoError(t, err)

	assert.Equal(t, PhaseCompleted, result.Phase)
	assert.Equal(t, 1, result.TotalRemoved)
	assert.Equal(t, 2, result.SkippedCount)
	assertCounterIdentity(t, result)

	storageItem := findItem(t, result, root.Path+"/storage.json")
	assert.Equal(t, OutcomeSkipped, storageItem.Outcome)
	assert.Contains(t, storageItem.Detail, "not targeted")

	require.NotNil(t, result.Telemetry)
	assert.Equal(t, "new", result.Telemetry.New.MachineID)
	assert.Equal(t, int64(4), result.StoreRows)
}

func TestClean_TelemetryAndStoreAcrossRoots(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	gsRoot := globalStorageRoot()
	wsRoot := workspaceStorageRoot()
	roots := []editor.EnvironmentRoot{gsRoot, wsRoot}

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).Return(roots, nil)
	m.scanner.EXPECT().Scan(gsRoot, gomock.Any()).Return(nil, nil)
	m.scanner.EXPECT().Scan(wsRoot, gomock.Any()).Return(nil, nil)
	m.fs.EXPECT().WalkDir(gsRoot.Path, gomock.Any()).Return(nil)
	m.fs.EXPECT().WalkDir(wsRoot.Path, gomock.Any()).Return(nil)

	m.telemetry.EXPECT().RewriteIDs(gsRoot.Path + "/storage.json").Return(telemetry.Rewrite{
		Path: gsRoot.Path + "/storage.json",
	}, nil)

	m.fs.EXPECT().Glob(wsRoot.Path+"/*/state.vscdb").Return([]string{
		wsRoot.Path + "/a1b2/state.vscdb",
		wsRoot.Path + "/c3d4/state.vscdb",
	}, nil)
	m.store.EXPECT().Clean(gomock.Any(), gsRoot.Path+"/state.vscdb", gomock.Any()).
		Return(store.CleanResult{Path: gsRoot.Path + "/state.vscdb", TableExists: true, RowsDeleted: 3}, nil)
	m.store.EXPECT().Clean(gomock.Any(), wsRoot.Path+"/a1b2/state.vscdb", gomock.Any()).
		Return(store.CleanResult{Path: wsRoot.Path + "/a1b2/state.vscdb", TableExists: true, RowsDeleted: 1}, nil)
	m.store.EXPECT().Clean(gomock.Any(), wsRoot.Path+"/c3d4/state.vscdb", gomock.Any()).
		Return(store.CleanResult{Path: wsRoot.Path + "/c3d4/state.vscdb", TableExists: true, RowsDeleted: 1}, nil)
	m.reporter.EXPECT().Append(gomock.Any()).Return(nil)

	result, err := c.Clean(context.Background(), CleanParams{Editor: "vscode"})
	require.NoError(t, err)

	assert.Equal(t, PhaseCompleted, result.Phase)
	require.NotNil(t, result.Telemetry)
	assert.Len(t, result.StoreResults, 3)
	assert.Equal(t, int64(5), result.StoreRows)
}

func TestClean_KeepFlagsSkipAuxiliarySteps(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	root := globalStorageRoot()
	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).Return([]editor.EnvironmentRoot{root}, nil)
	m.scanner.EXPECT().Scan(root, gomock.Any()).Return(nil, nil)
	m.fs.EXPECT().WalkDir(root.Path, gomock.Any()).Return(nil)
	m.reporter.EXPECT().Append(gomock.Any()).Return(nil)

	result, err := c.Clean(context.Background(), CleanParams{
		Editor:        "vscode",
		KeepTelemetry: true,
		KeepStore:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, PhaseCompleted, result.Phase)
	assert.Nil(t, result.Telemetry)
	assert.Zero(t, result.StoreRows)
	assert.Empty(t, result.StoreResults)
}

func TestClean_UnknownEditorFails(t *testing.T) {
	c, _ := newTestCleaner(t, createTestConfig())

	_, err := c.Clean(context.Background(), CleanParams{Editor: "emacs"})
	assert.ErrorIs(t, err, editor.ErrUnsupportedEditor)
}

func TestClean_CanceledContextAborts(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	root := cacheRoot()
	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).Return([]editor.EnvironmentRoot{root}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := c.Clean(ctx, CleanParams{Editor: "vscode"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, PhaseScanning, result.Phase)
}

func TestClean_ScanFailureIsAuxiliaryError(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	badRoot := cacheRoot()
	goodRoot := editor.EnvironmentRoot{
		Variant: editor.VariantVSCode,
		OS:      editor.CurrentOS(),
		Path:    "/home/user/.config/Code/logs",
		Kind:    editor.RootLogs,
		Exists:  true,
	}
	entries := []scan.FileEntry{
		{Path: goodRoot.Path + "/main.log", SizeBytes: 10, Kind: scan.KindLog, Classification: scan.ClassificationRemovable},
	}

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).
		Return([]editor.EnvironmentRoot{badRoot, goodRoot}, nil)
	m.scanner.EXPECT().Scan(badRoot, gomock.Any()).Return(nil, errors.New("walk failed"))
	m.scanner.EXPECT().Scan(goodRoot, gomock.Any()).Return(entries, nil)
	m.guard.EXPECT().Check(goodRoot.Path+"/main.log", goodRoot.Path).Return(nil)
	m.fs.EXPECT().Remove(goodRoot.Path + "/main.log").Return(nil)
	m.fs.EXPECT().WalkDir(goodRoot.Path, gomock.Any()).Return(nil)
	m.reporter.EXPECT().Append(gomock.Any()).Return(nil)

	result, err := c.Clean(context.Background(), CleanParams{Editor: "vscode"})
	require.NoError(t, err)

	assert.Equal(t, PhasePartiallyFailed, result.Phase)
	assert.Equal(t, 1, result.TotalScanned)
	assert.Equal(t, 1, result.TotalRemoved)
	require.Len(t, result.AuxErrors, 1)
	assert.Contains(t, result.AuxErrors[0], "walk failed")
	assertCounterIdentity(t, result)
}

func TestCleanAll_CleansEveryConfiguredEditor(t *testing.T) {
	cfg := createTestConfig()
	cfg.Editors = []string{"vscode", "cursor"}
	c, m := newTestCleaner(t, cfg)

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).Return(nil, nil)
	m.locator.EXPECT().Locate(editor.VariantCursor, editor.CurrentOS()).Return(nil, nil)
	m.reporter.EXPECT().Append(gomock.Any()).Return(nil).Times(2)

	results, err := c.CleanAll(context.Background(), CleanParams{})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "vscode", results[0].Editor)
	assert.Equal(t, "cursor", results[1].Editor)
	for _, result := range results {
		assert.Equal(t, PhaseCompleted, result.Phase)
	}
}

func TestCleanAll_NoEditorsConfigured(t *testing.T) {
	cfg := createTestConfig()
	cfg.Editors = nil
	c, _ := newTestCleaner(t, cfg)

	_, err := c.CleanAll(context.Background(), CleanParams{})
	assert.ErrorIs(t, err, ErrNoEditorsConfigured)
}

func TestCleanPluginHome_SweepsEverythingExceptPreserved(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	root := editor.EnvironmentRoot{
		OS:     editor.CurrentOS(),
		Path:   "/home/user/.augment",
		Kind:   editor.RootPluginHome,
		Exists: true,
	}
	entries := []scan.FileEntry{
		{Path: root.Path + "/settings.json", SizeBytes: 10, Kind: scan.KindConfig, Classification: scan.ClassificationPreserve},
		{Path: root.Path + "/session.json", SizeBytes: 100, Kind: scan.KindUnknown, Classification: scan.ClassificationRemovable},
		{Path: root.Path + "/keybindings.json", SizeBytes: 50, Kind: scan.KindConfig, Classification: scan.ClassificationRemovable},
	}

	m.locator.EXPECT().PluginHome().Return(root, nil)
	m.scanner.EXPECT().Scan(root, gomock.Any()).Return(entries, nil)
	m.guard.EXPECT().Check(root.Path+"/session.json", root.Path).Return(nil)
	m.guard.EXPECT().Check(root.Path+"/keybindings.json", root.Path).Return(nil)
	m.fs.EXPECT().Remove(root.Path + "/session.json").Return(nil)
	m.fs.EXPECT().Remove(root.Path + "/keybindings.json").Return(nil)
	m.fs.EXPECT().WalkDir(root.Path, gomock.Any()).Return(nil)

	var recorded report.Run
	m.reporter.EXPECT().Append(gomock.Any()).DoAndReturn(func(run report.Run) error {
		recorded = run
		return nil
	})

	result, err := c.CleanPluginHome(context.Background(), CleanParams{})
	require.NoError(t, err)

	assert.Equal(t, PhaseCompleted, result.Phase)
	assert.Equal(t, pluginHomeLabel, result.Editor)
	assert.Equal(t, 2, result.TotalRemoved)
	assert.Equal(t, 1, result.PreservedCount)
	assert.Equal(t, int64(150), result.BytesFreed)
	assertCounterIdentity(t, result)
	assert.Equal(t, pluginHomeLabel, recorded.Editor)
}

func TestCleanPluginHome_MissingDirectoryIsNoop(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	root := editor.EnvironmentRoot{
		OS:     editor.CurrentOS(),
		Path:   "/home/user/.augment",
		Kind:   editor.RootPluginHome,
		Exists: false,
	}
	m.locator.EXPECT().PluginHome().Return(root, nil)

	result, err := c.CleanPluginHome(context.Background(), CleanParams{})
	require.NoError(t, err)

	assert.Equal(t, PhaseCompleted, result.Phase)
	assert.Zero(t, result.TotalScanned)
	assert.Empty(t, result.Items)
}
