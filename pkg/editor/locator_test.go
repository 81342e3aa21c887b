//go:build unit

package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fsmocks "github.com/vsweep/vsweep/pkg/fs/mocks"
	"go.uber.org/mock/gomock"
)

func TestRealLocator_Candidates_UnknownVariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := fsmocks.NewMockFS(ctrl)
	locator := NewLocator(NewLocatorParams{FS: mockFS})

	roots, err := locator.Candidates(Variant("notepad"), OSLinux)
	assert.NoError(t, err)
	assert.Empty(t, roots)
}

func TestRealLocator_Candidates_UnknownOS(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := fsmocks.NewMockFS(ctrl)
	mockFS.EXPECT().GetHomeDir().Return(filepath.Join("home", "user"), nil)

	locator := NewLocator(NewLocatorParams{FS: mockFS})

	roots, err := locator.Candidates(VariantVSCode, OSFamily("plan9"))
	assert.NoError(t, err)
	assert.Empty(t, roots)
}

func TestRealLocator_Candidates_ProbesAllTemplates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	home := filepath.Join("home", "user")
	appDir := filepath.Join(home, ".config", "Cursor")

	mockFS := fsmocks.NewMockFS(ctrl)
	mockFS.EXPECT().GetHomeDir().Return(home, nil)
	mockFS.EXPECT().Exists(gomock.Any()).Return(false, nil).AnyTimes()

	locator := NewLocator(NewLocatorParams{FS: mockFS})

	roots, err := locator.Candidates(VariantCursor, OSLinux)
	require.NoError(t, err)
	require.Len(t, roots, len(rootTemplates))

	paths := make(map[string]RootKind)
	for _, root := range roots {
		assert.Equal(t, VariantCursor, root.Variant)
		assert.Equal(t, OSLinux, root.OS)
		assert.False(t, root.Exists)
		paths[root.Path] = root.Kind
	}
	assert.Equal(t, RootGlobalStorage, paths[filepath.Join(appDir, "User", "globalStorage")])
	assert.Equal(t, RootWorkspaceStorage, paths[filepath.Join(appDir, "User", "workspaceStorage")])
	assert.Equal(t, RootLogs, paths[filepath.Join(appDir, "logs")])
	assert.Equal(t, RootCache, paths[filepath.Join(appDir, "GPUCache")])
}

func TestRealLocator_Locate_FiltersNonExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	home := filepath.Join("home", "user")
	globalStorage := filepath.Join(home, ".config", "Code", "User", "globalStorage")

	mockFS := fsmocks.NewMockFS(ctrl)
	mockFS.EXPECT().GetHomeDir().Return(home, nil)
	mockFS.EXPECT().Exists(globalStorage).Return(true, nil)
	mockFS.EXPECT().IsDir(globalStorage).Return(true, nil)
	mockFS.EXPECT().ReadDir(globalStorage).Return([]os.DirEntry{}, nil)
	mockFS.EXPECT().Exists(gomock.Any()).Return(false, nil).AnyTimes()

	locator := NewLocator(NewLocatorParams{FS: mockFS})

	roots, err := locator.Locate(VariantVSCode, OSLinux)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, globalStorage, roots[0].Path)
	assert.Equal(t, RootGlobalStorage, roots[0].Kind)
	assert.True(t, roots[0].Exists)
}

func TestRealLocator_Locate_UnreadableRootOmitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	home := filepath.Join("home", "user")
	globalStorage := filepath.Join(home, ".config", "Code", "User", "globalStorage")

	mockFS := fsmocks.NewMockFS(ctrl)
	mockFS.EXPECT().GetHomeDir().Return(home, nil)
	mockFS.EXPECT().Exists(globalStorage).Return(true, nil)
	mockFS.EXPECT().IsDir(globalStorage).Return(true, nil)
	permErr := os.ErrPermission
	mockFS.EXPECT().ReadDir(globalStorage).Return(nil, permErr)
	mockFS.EXPECT().IsPermission(permErr).Return(true)
	mockFS.EXPECT().Exists(gomock.Any()).Return(false, nil).AnyTimes()

	locator := NewLocator(NewLocatorParams{FS: mockFS})

	roots, err := locator.Locate(VariantVSCode, OSLinux)
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestRealLocator_PluginHome_Default(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	home := filepath.Join("home", "user")
	pluginHome := filepath.Join(home, ".augment")

	mockFS := fsmocks.NewMockFS(ctrl)
	mockFS.EXPECT().GetHomeDir().Return(home, nil)
	mockFS.EXPECT().Exists(pluginHome).Return(true, nil)
	mockFS.EXPECT().IsDir(pluginHome).Return(true, nil)
	mockFS.EXPECT().ReadDir(pluginHome).Return([]os.DirEntry{}, nil)

	locator := NewLocator(NewLocatorParams{FS: mockFS})

	root, err := locator.PluginHome()
	require.NoError(t, err)
	assert.Equal(t, pluginHome, root.Path)
	assert.Equal(t, RootPluginHome, root.Kind)
	assert.True(t, root.Exists)
}

func TestRealLocator_PluginHome_Override(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	custom := filepath.Join("opt", "plugin-data")

	mockFS := fsmocks.NewMockFS(ctrl)
	mockFS.EXPECT().Exists(custom).Return(false, nil)

	locator := NewLocator(NewLocatorParams{FS: mockFS, PluginHome: custom})

	root, err := locator.PluginHome()
	require.NoError(t, err)
	assert.Equal(t, custom, root.Path)
	assert.False(t, root.Exists)
}
