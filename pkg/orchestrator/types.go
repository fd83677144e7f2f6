//go:generate mockgen -destination=./mocks/orchestrator.go -package=mocks . ArtifactLister,HookRunner

package orchestrator

import (
	"context"

	"github.com/glorpus-work/pipget/pkg/download"
	"github.com/glorpus-work/pipget/pkg/hook"
	"github.com/glorpus-work/pipget/pkg/model"
)

// ArtifactLister is the subset of the index lister used by the orchestrator.
type ArtifactLister interface {
	List(ctx context.Context, pkg string) ([]model.Artifact, error)
}

// Downloader handles artifact downloading.
type Downloader interface {
	Fetch(ctx context.Context, item download.Item, opts download.Options) (string, error)
}

// HookRunner runs lifecycle scripts around downloads.
type HookRunner interface {
	Execute(hookType hook.HookType, ctx hook.HookContext) error
}

// Orchestrator ties index listing, filtering and downloading together.
type Orchestrator struct {
	Index      ArtifactLister
	DL         Downloader
	HookRunner HookRunner // optional, nil disables lifecycle scripts
	Hooks      Hooks      // Hooks for progress and event notifications
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|downloading|skipped|done|error
	ID    string // artifact file name
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// ResolveRequest names a package and the filters applied to its listing.
type ResolveRequest struct {
	Name        string
	Constraint  string // raw constraint expression, e.g. ">=2.0.0"
	NameFilters []string
	Extensions  []string
	Latest      bool
}

// DownloadOptions control where resolved artifacts end up.
type DownloadOptions struct {
	Dir string // empty means current directory
}

// DownloadSummary reports the outcome of a download run.
type DownloadSummary struct {
	Downloaded []string // local paths of fetched artifacts
	Skipped    []string // file names already present in the destination
	Failed     []string // file names that could not be fetched
}
