package index

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/glorpus-work/pipget/pkg/errors"
	"github.com/glorpus-work/pipget/pkg/model"
)

// DefaultArtifactHost is the host prefix artifact links are expected to
// carry on the public index.
const DefaultArtifactHost = "https://files.pythonhosted.org/"

// Lister scrapes artifact links out of a package's listing page.
type Lister struct {
	fetcher  Fetcher
	indexURL string
	hrefRe   *regexp.Regexp
}

// NewLister creates a Lister against indexURL. Only hrefs starting with
// artifactHost are treated as artifact links; an empty artifactHost selects
// DefaultArtifactHost.
func NewLister(fetcher Fetcher, indexURL, artifactHost string) *Lister {
	if artifactHost == "" {
		artifactHost = DefaultArtifactHost
	}
	return &Lister{
		fetcher:  fetcher,
		indexURL: indexURL,
		hrefRe:   regexp.MustCompile(`href="(` + regexp.QuoteMeta(artifactHost) + `[^"]+)"`),
	}
}

// ListingURL returns the listing page URL for a package, which is the index
// URL with the package name appended and a trailing slash.
func (l *Lister) ListingURL(pkg string) (string, error) {
	joined, err := url.JoinPath(l.indexURL, pkg)
	if err != nil {
		return "", errors.Wrapf(errors.ErrIndexUnreachable, "bad index URL %q: %v", l.indexURL, err)
	}
	return joined + "/", nil
}

// List fetches the listing page for pkg and returns the artifacts linked
// from it, in page order. Checksum fragments ("#sha256=...") are stripped
// from the URLs.
func (l *Lister) List(ctx context.Context, pkg string) ([]model.Artifact, error) {
	listingURL, err := l.ListingURL(pkg)
	if err != nil {
		return nil, err
	}
	body, err := l.fetcher.Fetch(ctx, listingURL)
	if err != nil {
		return nil, err
	}
	return l.parseListing(body), nil
}

func (l *Lister) parseListing(body []byte) []model.Artifact {
	matches := l.hrefRe.FindAllSubmatch(body, -1)
	artifacts := make([]model.Artifact, 0, len(matches))
	for _, m := range matches {
		raw := string(m[1])
		if before, _, found := strings.Cut(raw, "#"); found {
			raw = before
		}
		artifacts = append(artifacts, model.Artifact{URL: raw})
	}
	return artifacts
}
