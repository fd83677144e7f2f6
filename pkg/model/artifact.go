// Package model holds the data structures shared between the index,
// filtering and download layers.
package model

import (
	"net/url"
	"path"

	"github.com/glorpus-work/pipget/pkg/pyver"
)

// Artifact is a single downloadable file discovered in a package index
// listing. URL is absolute and carries no fragment.
type Artifact struct {
	URL string `json:"url"`
}

// FileName returns the last path element of the artifact URL. That is the
// name version extraction works on and the name the file is saved under.
func (a *Artifact) FileName() string {
	u := a.GetURL()
	if u == nil {
		return ""
	}
	return path.Base(u.Path)
}

// GetURL returns the parsed URL of this artifact.
func (a *Artifact) GetURL() *url.URL {
	parsed, err := url.Parse(a.URL)
	if err != nil {
		return nil
	}
	return parsed
}

// Version returns the version string encoded in the artifact file name. The
// boolean is false when the file name carries no recognizable version. The
// string is raw file-name text and may still fail to parse.
func (a *Artifact) Version() (string, bool) {
	return pyver.Extract(a.FileName())
}
