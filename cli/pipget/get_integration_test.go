//go:build integration

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	pipgeterrors "github.com/glorpus-work/pipget/pkg/errors"
	"github.com/glorpus-work/pipget/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ShowOnly(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask",
		"flask-1.0.0.tar.gz",
		"flask-2.0.1-py3-none-any.whl",
		"flask-2.0.1.tar.gz",
	)

	destDir := filepath.Join(tempDir, "downloads")
	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), destDir)

	out, err := runCLI(t, "--config", cfgPath, "get", "flask", "--show-only")
	require.NoError(t, err)

	require.Contains(t, out, "File: flask-1.0.0.tar.gz")
	require.Contains(t, out, "File: flask-2.0.1-py3-none-any.whl")
	require.Contains(t, out, "File: flask-2.0.1.tar.gz")

	// Show-only must not download anything.
	_, statErr := os.Stat(destDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGet_DownloadsMatchingArtifacts(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask",
		"flask-1.0.0.tar.gz",
		"flask-2.0.1-py3-none-any.whl",
		"flask-2.0.1.tar.gz",
	)

	destDir := filepath.Join(tempDir, "downloads")
	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), destDir)

	out, err := runCLI(t, "--config", cfgPath, "get", "flask>=2.0.0")
	require.NoError(t, err)
	require.Contains(t, out, "Downloaded 2, skipped 0, failed 0")

	for _, name := range []string{"flask-2.0.1-py3-none-any.whl", "flask-2.0.1.tar.gz"} {
		data, readErr := os.ReadFile(filepath.Join(destDir, name))
		require.NoError(t, readErr)
		assert.Equal(t, testutil.ArtifactContent(name), data)
	}

	// The excluded version must not be present.
	_, statErr := os.Stat(filepath.Join(destDir, "flask-1.0.0.tar.gz"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGet_SkipsExistingOnRerun(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask", "flask-2.0.1.tar.gz")

	destDir := filepath.Join(tempDir, "downloads")
	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), destDir)

	_, err := runCLI(t, "--config", cfgPath, "get", "flask")
	require.NoError(t, err)

	out, err := runCLI(t, "--config", cfgPath, "get", "flask")
	require.NoError(t, err)
	require.Contains(t, out, "skipped 1")
	require.Contains(t, out, "Downloaded 0")
}

func TestGet_LatestPicksHighestVersion(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask",
		"flask-1.0.0.tar.gz",
		"flask-2.0.1-py3-none-any.whl",
		"flask-2.0.1.tar.gz",
	)

	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), filepath.Join(tempDir, "downloads"))

	out, err := runCLI(t, "--config", cfgPath, "get", "flask", "--latest", "--show-only")
	require.NoError(t, err)

	require.Contains(t, out, "File: flask-2.0.1-py3-none-any.whl")
	assert.Equal(t, 1, strings.Count(out, "File: "), "latest should keep a single artifact, got:\n%s", out)
}

func TestGet_ExtensionFilter(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask",
		"flask-2.0.1-py3-none-any.whl",
		"flask-2.0.1.tar.gz",
	)

	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), filepath.Join(tempDir, "downloads"))

	out, err := runCLI(t, "--config", cfgPath, "get", "flask", "--ext", "whl", "--show-only")
	require.NoError(t, err)

	require.Contains(t, out, "File: flask-2.0.1-py3-none-any.whl")
	assert.NotContains(t, out, "flask-2.0.1.tar.gz")
}

func TestGet_SubstringFilter(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask",
		"flask-2.0.1-py3-none-any.whl",
		"flask-2.0.1.tar.gz",
	)

	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), filepath.Join(tempDir, "downloads"))

	out, err := runCLI(t, "--config", cfgPath, "get", "flask", "--filter", "py3", "--show-only")
	require.NoError(t, err)

	require.Contains(t, out, "File: flask-2.0.1-py3-none-any.whl")
	assert.NotContains(t, out, "flask-2.0.1.tar.gz")
}

func TestGet_ExplicitConditionOverridesSpecConstraint(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask", "flask-1.0.0.tar.gz", "flask-2.0.1.tar.gz")

	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), filepath.Join(tempDir, "downloads"))

	// The spec's embedded constraint matches nothing; the positional
	// condition replaces it.
	out, err := runCLI(t, "--config", cfgPath, "get", "flask>=9.0.0", ">=2.0.0", "--show-only")
	require.NoError(t, err)

	require.Contains(t, out, "File: flask-2.0.1.tar.gz")
	assert.NotContains(t, out, "flask-1.0.0.tar.gz")
}

func TestGet_ConstraintWithoutMatches(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask", "flask-1.0.0.tar.gz", "flask-2.0.1.tar.gz")

	destDir := filepath.Join(tempDir, "downloads")
	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), destDir)

	out, err := runCLI(t, "--config", cfgPath, "get", "flask", ">2.0.1")
	require.NoError(t, err)
	require.Contains(t, out, "No artifacts match flask >2.0.1")

	_, statErr := os.Stat(destDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGet_InvalidConstraint(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask", "flask-1.0.0.tar.gz")

	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), filepath.Join(tempDir, "downloads"))

	_, err := runCLI(t, "--config", cfgPath, "get", "flask", ">=banana")
	require.Error(t, err)
	require.ErrorIs(t, err, pipgeterrors.ErrInvalidConstraint)
}

func TestGet_UnreachableIndex(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask", "flask-1.0.0.tar.gz")

	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), filepath.Join(tempDir, "downloads"))

	fixture.Server.Close()

	_, err := runCLI(t, "--config", cfgPath, "get", "flask")
	require.Error(t, err)
	require.ErrorIs(t, err, pipgeterrors.ErrIndexUnreachable)
}

func TestGet_PreDownloadHookBlocks(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask", "flask-2.0.1.tar.gz")

	hooksDir := filepath.Join(tempDir, "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0o755))
	script := `err := "downloads disabled"`
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "pre-download.tengo"), []byte(script), 0o644))

	destDir := filepath.Join(tempDir, "downloads")
	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), destDir)

	// A blocked artifact is reported but does not fail the run.
	out, err := runCLI(t, "--config", cfgPath, "get", "flask", "--hooks-dir", hooksDir)
	require.NoError(t, err)
	require.Contains(t, out, "failed 1")

	_, statErr := os.Stat(filepath.Join(destDir, "flask-2.0.1.tar.gz"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGet_PostDownloadHookRuns(t *testing.T) {
	tempDir := t.TempDir()
	fixture := testutil.StartIndexServer(t, filepath.Join(tempDir, "index"))
	fixture.AddPackage(t, "flask", "flask-2.0.1.tar.gz")

	hooksDir := filepath.Join(tempDir, "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0o755))
	script := `
fmt := import("fmt")
fmt.println("post hook saw " + artifactName)
`
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "post-download.tengo"), []byte(script), 0o644))

	destDir := filepath.Join(tempDir, "downloads")
	cfgPath := filepath.Join(tempDir, "config.yaml")
	writeTempConfig(t, cfgPath, fixture.IndexURL(), fixture.ArtifactHost(), destDir)

	out, err := runCLI(t, "--config", cfgPath, "get", "flask", "--hooks-dir", hooksDir)
	require.NoError(t, err)
	require.Contains(t, out, "post hook saw flask-2.0.1.tar.gz")
	require.Contains(t, out, "Downloaded 1")
}
