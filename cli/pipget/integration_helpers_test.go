//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args and returns the captured stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	_ = w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), err
}

// writeTempConfig writes a minimal config YAML pointing at a local index.
func writeTempConfig(t *testing.T, path, indexURL, artifactHost, destDir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	yamlContent := "settings:\n" +
		"  index_url: " + indexURL + "\n" +
		"  artifact_host: " + artifactHost + "\n" +
		"  dest_dir: " + strings.ReplaceAll(destDir, "\\", "\\\\") + "\n" +
		"  http_timeout: 5s\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))
}
