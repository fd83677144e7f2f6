// Package index talks to a Python style "simple" package index: it fetches
// the listing page of a package, scrapes the artifact links out of it and
// narrows them down with the filters given on the command line.
package index

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/glorpus-work/pipget/pkg/errors"
)

// HTTPFetcher fetches index pages over HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher with the given request timeout and
// User-Agent header value.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch performs a single GET against rawURL. Any transport failure or
// non-200 status is reported as ErrIndexUnreachable.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrIndexUnreachable, "build request for %s: %v", rawURL, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrIndexUnreachable, "%s: %v", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrIndexUnreachable, "%s returned status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrIndexUnreachable, "read %s: %v", rawURL, err)
	}
	return body, nil
}
