//go:generate mockgen -destination=./mocks/download.go -package=mocks . Manager

package download

import (
	"context"
	"net/url"
)

// Manager downloads remote artifacts one at a time.
type Manager interface {
	// Fetch downloads a single item into opts.Dir and returns the absolute
	// local file path.
	Fetch(ctx context.Context, item Item, opts Options) (string, error)
}

// Item represents one remote file to download.
type Item struct {
	ID       string   // stable identifier, unique within one run
	URL      *url.URL // source URL to download
	Filename string   // preferred filename; if empty, a name is derived from the URL
}

// Options control where downloads land.
type Options struct {
	Dir string // destination directory; empty means the current directory
}
