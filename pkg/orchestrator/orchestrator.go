package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/glorpus-work/pipget/pkg/download"
	"github.com/glorpus-work/pipget/pkg/fsutil"
	"github.com/glorpus-work/pipget/pkg/hook"
	"github.com/glorpus-work/pipget/pkg/index"
	"github.com/glorpus-work/pipget/pkg/model"
	"github.com/glorpus-work/pipget/pkg/pyver"
)

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Resolve lists the package's artifacts on the index and applies the request
// filters in order: version constraint, name substrings, latest, extensions.
func (o *Orchestrator) Resolve(ctx context.Context, req ResolveRequest) ([]model.Artifact, error) {
	if o.Index == nil {
		return nil, fmt.Errorf("index lister is not configured")
	}

	var constraint *pyver.Constraint
	if req.Constraint != "" {
		c, err := pyver.ParseConstraint(req.Constraint)
		if err != nil {
			return nil, err
		}
		constraint = c
	}

	emit(o.Hooks, Event{Phase: "resolving", Msg: req.Name})
	artifacts, err := o.Index.List(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	artifacts = index.Filter(artifacts, index.FilterOptions{
		Constraint:  constraint,
		NameFilters: req.NameFilters,
		Latest:      req.Latest,
	})
	return index.FilterExtensions(artifacts, req.Extensions), nil
}

// Download fetches the artifacts sequentially, skipping files already present
// in the destination. Per-artifact failures land in the summary instead of
// aborting the run.
func (o *Orchestrator) Download(ctx context.Context, pkgName string, artifacts []model.Artifact, opts DownloadOptions) (*DownloadSummary, error) {
	if o.DL == nil {
		return nil, fmt.Errorf("download manager is not configured")
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	summary := &DownloadSummary{}
	for _, artifact := range artifacts {
		name := artifact.FileName()
		if name == "" {
			emit(o.Hooks, Event{Phase: "error", ID: artifact.URL, Msg: "no usable file name"})
			summary.Failed = append(summary.Failed, artifact.URL)
			continue
		}

		dest := filepath.Join(dir, name)
		if fsutil.FileExists(dest) {
			emit(o.Hooks, Event{Phase: "skipped", ID: name, Msg: dest})
			summary.Skipped = append(summary.Skipped, name)
			continue
		}

		if err := o.runHook(hook.PreDownload, pkgName, artifact, dest); err != nil {
			emit(o.Hooks, Event{Phase: "error", ID: name, Msg: err.Error()})
			summary.Failed = append(summary.Failed, name)
			continue
		}

		emit(o.Hooks, Event{Phase: "downloading", ID: name, Msg: artifact.URL})
		path, err := o.DL.Fetch(ctx, download.Item{ID: name, URL: artifact.GetURL(), Filename: name}, download.Options{Dir: dir})
		if err != nil {
			emit(o.Hooks, Event{Phase: "error", ID: name, Msg: err.Error()})
			summary.Failed = append(summary.Failed, name)
			continue
		}

		if err := o.runHook(hook.PostDownload, pkgName, artifact, path); err != nil {
			emit(o.Hooks, Event{Phase: "error", ID: name, Msg: err.Error()})
			summary.Failed = append(summary.Failed, name)
			continue
		}

		summary.Downloaded = append(summary.Downloaded, path)
	}

	emit(o.Hooks, Event{Phase: "done"})
	return summary, nil
}

func (o *Orchestrator) runHook(hookType hook.HookType, pkgName string, artifact model.Artifact, destPath string) error {
	if o.HookRunner == nil {
		return nil
	}
	version, _ := artifact.Version()
	return o.HookRunner.Execute(hookType, hook.HookContext{
		PackageName:     pkgName,
		ArtifactName:    artifact.FileName(),
		ArtifactVersion: version,
		ArtifactURL:     artifact.URL,
		DestPath:        destPath,
	})
}

// New constructs a default Orchestrator from existing managers. Helper for wiring.
// The hook runner can be nil if no lifecycle scripts are configured.
func New(idx ArtifactLister, dl Downloader, runner HookRunner, hooks Hooks) *Orchestrator {
	return &Orchestrator{
		Index:      idx,
		DL:         dl,
		HookRunner: runner,
		Hooks:      hooks,
	}
}
