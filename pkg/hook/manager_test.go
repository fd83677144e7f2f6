package hook_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/pipget/pkg/errors"
	"github.com/glorpus-work/pipget/pkg/hook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHookManager(t *testing.T) {
	manager := hook.NewHookManager()
	assert.NotNil(t, manager, "NewHookManager should return a non-nil manager")
}

func TestAddAndExecuteHook(t *testing.T) {
	manager := hook.NewHookManager()
	ctx := hook.HookContext{
		PackageName:     "flask",
		ArtifactName:    "flask-2.0.1.tar.gz",
		ArtifactVersion: "2.0.1",
		Vars: map[string]interface{}{
			"testVar": "testValue",
		},
	}

	err := manager.AddHook(hook.Hook{
		Type:    hook.PreDownload,
		Content: `// Simple hook that doesn't return anything`,
	})
	require.NoError(t, err, "AddHook should not return an error for valid hook")

	err = manager.Execute(hook.PreDownload, ctx)
	require.NoError(t, err, "Execute should not return an error for valid hook")
}

func TestAddHook_EmptyType(t *testing.T) {
	manager := hook.NewHookManager()
	err := manager.AddHook(hook.Hook{Content: `// no type`})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookTypeEmpty)
}

func TestHasHook(t *testing.T) {
	manager := hook.NewHookManager()

	assert.False(t, manager.HasHook(hook.PreDownload), "Should not have hook before adding")

	err := manager.AddHook(hook.Hook{
		Type:    hook.PreDownload,
		Content: `// Test hook`,
	})
	require.NoError(t, err)

	assert.True(t, manager.HasHook(hook.PreDownload), "Should have hook after adding")
}

func TestRemoveHook(t *testing.T) {
	manager := hook.NewHookManager()

	err := manager.AddHook(hook.Hook{
		Type:    hook.PostDownload,
		Content: `// Test hook`,
	})
	require.NoError(t, err)

	err = manager.RemoveHook(hook.PostDownload)
	require.NoError(t, err, "RemoveHook should not return an error for existing hook")

	assert.False(t, manager.HasHook(hook.PostDownload), "Should not have hook after removal")
}

func TestExecuteAll(t *testing.T) {
	manager := hook.NewHookManager()

	err := manager.AddHook(hook.Hook{Type: hook.PreDownload, Content: `result := "ok"`})
	require.NoError(t, err)
	err = manager.AddHook(hook.Hook{Type: hook.PostDownload, Content: `result := "ok"`})
	require.NoError(t, err)

	err = manager.ExecuteAll(hook.HookContext{PackageName: "flask"})
	require.NoError(t, err, "ExecuteAll should run every registered hook")

	err = manager.AddHook(hook.Hook{Type: hook.PostDownload, Content: `err := "refused"`})
	require.NoError(t, err)

	err = manager.ExecuteAll(hook.HookContext{PackageName: "flask"})
	require.Error(t, err, "ExecuteAll should surface a failing hook")
	assert.ErrorIs(t, err, errors.ErrHookScript)
}

func TestLoadHooksFromDir(t *testing.T) {
	hooksDir := t.TempDir()

	err := os.WriteFile(filepath.Join(hooksDir, "pre-download.tengo"), []byte(`result := "ok"`), 0o644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(hooksDir, "post-download.tengo"), []byte(`result := "ok"`), 0o644)
	require.NoError(t, err)
	// Unknown hook types and foreign extensions are skipped.
	err = os.WriteFile(filepath.Join(hooksDir, "pre-install.tengo"), []byte(`result := "ok"`), 0o644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(hooksDir, "notes.txt"), []byte(`not a hook`), 0o644)
	require.NoError(t, err)

	manager := hook.NewHookManager()
	err = hook.LoadHooksFromDir(manager, hooksDir)
	require.NoError(t, err, "LoadHooksFromDir should not return an error")

	assert.True(t, manager.HasHook(hook.PreDownload), "Should have loaded the pre-download hook")
	assert.True(t, manager.HasHook(hook.PostDownload), "Should have loaded the post-download hook")
	assert.False(t, manager.HasHook(hook.HookType("pre-install")), "Unknown hook types should be skipped")
}

func TestLoadHooksFromDir_MissingDir(t *testing.T) {
	manager := hook.NewHookManager()
	err := hook.LoadHooksFromDir(manager, filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookLoad)
}

func TestHookTemplate(t *testing.T) {
	tests := []struct {
		name     string
		hookType hook.HookType
		expected string
	}{
		{"PreDownload", hook.PreDownload, "Pre-download hook"},
		{"PostDownload", hook.PostDownload, "Post-download hook"},
		{"Unknown", hook.HookType("unknown"), "Unknown hook type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			template := hook.HookTemplate(tc.hookType)
			assert.Contains(t, template, tc.expected, "Template should contain expected content")
		})
	}
}
