//go:generate mockgen -destination=./mocks/index.go -package=mocks . Fetcher

package index

import "context"

// Fetcher retrieves the raw body of a package index page.
type Fetcher interface {
	// Fetch performs a single GET against url and returns the response body.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
