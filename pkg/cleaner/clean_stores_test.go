//go:build unit

package cleaner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/store"
)

func TestCleanStores_UsesConfiguredPatternsByDefault(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	gsRoot := globalStorageRoot()
	dbPath := gsRoot.Path + "/state.vscdb"

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).
		Return([]editor.EnvironmentRoot{gsRoot}, nil)
	m.store.EXPECT().Clean(gomock.Any(), dbPath, []string{"%augment%", "%Augment%"}).
		Return(store.CleanResult{Path: dbPath, TableExists: true, RowsDeleted: 2}, nil)

	results, err := c.CleanStores(context.Background(), editor.VariantVSCode, nil)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, int64(2), results[0].RowsDeleted)
}

func TestCleanStores_CustomPatternsOverrideConfig(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	gsRoot := globalStorageRoot()
	dbPath := gsRoot.Path + "/state.vscdb"

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).
		Return([]editor.EnvironmentRoot{gsRoot}, nil)
	m.store.EXPECT().Clean(gomock.Any(), dbPath, []string{"%workbench%"}).
		Return(store.CleanResult{Path: dbPath, TableExists: true, RowsDeleted: 1}, nil)

	_, err := c.CleanStores(context.Background(), editor.VariantVSCode, []string{"%workbench%"})
	require.NoError(t, err)
}

func TestCleanStores_DryRunCountsWithoutDeleting(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	gsRoot := globalStorageRoot()
	dbPath := gsRoot.Path + "/state.vscdb"

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).
		Return([]editor.EnvironmentRoot{gsRoot}, nil)
	m.store.EXPECT().CountMatches(gomock.Any(), dbPath, []string{"%augment%", "%Augment%"}).
		Return(int64(3), nil)

	results, err := c.CleanStores(context.Background(), editor.VariantVSCode, nil, StoreOpts{DryRun: true})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, int64(3), results[0].RowsDeleted)
	assert.True(t, results[0].TableExists)
}

func TestCleanStores_MissingDatabaseIsSkipped(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	gsRoot := globalStorageRoot()
	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).
		Return([]editor.EnvironmentRoot{gsRoot}, nil)
	m.store.EXPECT().Clean(gomock.Any(), gsRoot.Path+"/state.vscdb", gomock.Any()).
		Return(store.CleanResult{}, fmt.Errorf("%w: %s", store.ErrStoreNotFound, gsRoot.Path+"/state.vscdb"))

	results, err := c.CleanStores(context.Background(), editor.VariantVSCode, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCleanStores_LockedDatabaseAggregatesFailures(t *testing.T) {
	c, m := newTestCleaner(t, createTestConfig())

	gsRoot := globalStorageRoot()
	wsRoot := workspaceStorageRoot()
	lockedPath := gsRoot.Path + "/state.vscdb"
	workspacePath := wsRoot.Path + "/a1b2/state.vscdb"

	m.locator.EXPECT().Locate(editor.VariantVSCode, editor.CurrentOS()).
		Return([]editor.EnvironmentRoot{gsRoot, wsRoot}, nil)
	m.fs.EXPECT().Glob(wsRoot.Path+"/*/state.vscdb").Return([]string{workspacePath}, nil)
	m.store.EXPECT().Clean(gomock.Any(), lockedPath, gomock.Any()).
		Return(store.CleanResult{}, fmt.Errorf("%w: %s: database is locked", store.ErrStoreUnavailable, lockedPath))
	m.store.EXPECT().Clean(gomock.Any(), workspacePath, gomock.Any()).
		Return(store.CleanResult{Path: workspacePath, TableExists: true, RowsDeleted: 1}, nil)

	results, err := c.CleanStores(context.Background(), editor.VariantVSCode, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreCleanupFailed)
	assert.Contains(t, err.Error(), "database is locked")

	// The reachable database was still cleaned.
	require.Len(t, results, 1)
	assert.Equal(t, workspacePath, results[0].Path)
}
