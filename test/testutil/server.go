// Package testutil provides helpers for integration tests that need a local
// simple index with downloadable artifacts.
package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// IndexFixture is a local simple index backed by an on-disk directory.
type IndexFixture struct {
	Server *httptest.Server
	Root   string
}

// StartIndexServer serves a simple index layout from root:
//
//	simple/<package>/index.html
//	files/<artifact>
//
// Pages are added with AddPackage once the server is up, so their hrefs can
// carry the server's absolute URL. The server is closed when the test ends.
func StartIndexServer(t *testing.T, root string) *IndexFixture {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "simple"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "files"), 0o755))

	srv := httptest.NewServer(http.FileServer(http.Dir(root)))
	t.Cleanup(srv.Close)

	return &IndexFixture{Server: srv, Root: root}
}

// IndexURL returns the base URL packages are resolved against.
func (f *IndexFixture) IndexURL() string {
	return f.Server.URL + "/simple"
}

// ArtifactHost returns the URL prefix the artifact links point at.
func (f *IndexFixture) ArtifactHost() string {
	return f.Server.URL + "/files/"
}

// AddPackage writes an index page for pkg linking one artifact per file name
// and creates each artifact under files/ with distinct content. The links
// carry sha256 fragments the way real index pages do.
func (f *IndexFixture) AddPackage(t *testing.T, pkg string, files ...string) {
	t.Helper()

	pkgDir := filepath.Join(f.Root, "simple", pkg)
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html>\n<head><title>Links for " + pkg + "</title></head>\n<body>\n")
	page.WriteString("<h1>Links for " + pkg + "</h1>\n")
	for _, name := range files {
		content := []byte("artifact " + name + "\n")
		require.NoError(t, os.WriteFile(filepath.Join(f.Root, "files", name), content, 0o644))

		sum := sha256.Sum256(content)
		fmt.Fprintf(&page, "<a href=%q>%s</a><br/>\n", f.ArtifactHost()+name+"#sha256="+hex.EncodeToString(sum[:]), name)
	}
	page.WriteString("</body>\n</html>\n")

	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "index.html"), []byte(page.String()), 0o644))
}

// ArtifactContent returns the bytes AddPackage wrote for the given file name.
func ArtifactContent(name string) []byte {
	return []byte("artifact " + name + "\n")
}
