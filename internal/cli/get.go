package cli

import (
	"fmt"

	"github.com/glorpus-work/pipget/internal/logger"
	"github.com/glorpus-work/pipget/pkg/config"
	"github.com/glorpus-work/pipget/pkg/download"
	"github.com/glorpus-work/pipget/pkg/hook"
	"github.com/glorpus-work/pipget/pkg/index"
	"github.com/glorpus-work/pipget/pkg/orchestrator"
	"github.com/glorpus-work/pipget/pkg/spec"
	"github.com/spf13/cobra"
)

type getOptions struct {
	destDir  string
	showOnly bool
	filters  []string
	exts     []string
	latest   bool
	indexURL string
	hooksDir string
}

// NewGetCmd creates the get command.
func NewGetCmd() *cobra.Command {
	var opts getOptions

	cmd := &cobra.Command{
		Use:   "get PACKAGE [CONSTRAINT]",
		Short: "Download package artifacts from the index",
		Long: `Resolve a package against the configured simple index and download its
artifacts. A version constraint can be attached to the package spec
(e.g. "flask>=2.0.0") or passed as a second argument.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.destDir, "dest", "", "Destination directory (defaults to config)")
	cmd.Flags().BoolVarP(&opts.showOnly, "show-only", "s", false, "List matching artifacts without downloading")
	cmd.Flags().StringSliceVar(&opts.filters, "filter", nil, "Name substrings to keep, any-of (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.exts, "ext", nil, "Artifact extensions to keep (defaults to config)")
	cmd.Flags().BoolVarP(&opts.latest, "latest", "l", false, "Keep only the highest version")
	cmd.Flags().StringVar(&opts.indexURL, "index-url", "", "Base URL of the simple index (defaults to config)")
	cmd.Flags().StringVar(&opts.hooksDir, "hooks-dir", "", "Directory with .tengo hook scripts (defaults to config)")

	return cmd
}

func runGet(cmd *cobra.Command, args []string, opts getOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name, constraint := spec.Parse(args[0])
	if len(args) == 2 {
		constraint = args[1]
	}

	if opts.indexURL == "" {
		opts.indexURL = cfg.Settings.IndexURL
	}
	if opts.destDir == "" {
		opts.destDir = cfg.Settings.DestDir
	}
	if len(opts.exts) == 0 {
		opts.exts = cfg.Settings.Extensions
	}

	fetcher := index.NewHTTPFetcher(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent)
	lister := index.NewLister(fetcher, opts.indexURL, cfg.Settings.ArtifactHost)
	dlManager := download.NewManager(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent)

	hookManager, err := loadHookManager(cfg, opts.hooksDir)
	if err != nil {
		return err
	}

	// Progress output would interleave with the listing in show-only mode.
	hooks := orchestrator.Hooks{}
	if !opts.showOnly {
		hooks.OnEvent = func(e orchestrator.Event) {
			switch e.Phase {
			case "error":
				logger.Error("Download failed", logger.Fields{"file": e.ID, "error": e.Msg})
			case "skipped":
				logger.Info("Already downloaded", logger.Fields{"file": e.ID})
			default:
				if e.ID != "" {
					fmt.Printf("%s: %s (%s)\n", e.Phase, e.Msg, e.ID)
				} else {
					fmt.Printf("%s: %s\n", e.Phase, e.Msg)
				}
			}
		}
	}

	var runner orchestrator.HookRunner
	if hookManager != nil {
		runner = hookManager
	}
	orch := orchestrator.New(lister, dlManager, runner, hooks)

	req := orchestrator.ResolveRequest{
		Name:        name,
		Constraint:  constraint,
		NameFilters: opts.filters,
		Extensions:  opts.exts,
		Latest:      opts.latest,
	}

	ctx := cmd.Context()
	artifacts, err := orch.Resolve(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", name, err)
	}

	if len(artifacts) == 0 {
		if constraint != "" {
			fmt.Printf("No artifacts match %s %s\n", name, constraint)
		} else {
			fmt.Printf("No artifacts match %s\n", name)
		}
		return nil
	}

	if opts.showOnly {
		for _, artifact := range artifacts {
			fmt.Printf("File: %s\n", artifact.FileName())
		}
		return nil
	}

	summary, err := orch.Download(ctx, name, artifacts, orchestrator.DownloadOptions{Dir: opts.destDir})
	if err != nil {
		return fmt.Errorf("failed to download artifacts: %w", err)
	}

	// Per-artifact failures are already reported; they do not fail the run.
	fmt.Printf("Downloaded %d, skipped %d, failed %d\n", len(summary.Downloaded), len(summary.Skipped), len(summary.Failed))
	return nil
}

func loadHookManager(cfg *config.Config, hooksDir string) (*hook.DefaultHookManager, error) {
	if hooksDir == "" {
		hooksDir = cfg.Settings.HooksDir
	}
	if hooksDir == "" {
		return nil, nil
	}

	manager := hook.NewHookManager()
	if err := hook.LoadHooksFromDir(manager, hooksDir); err != nil {
		return nil, fmt.Errorf("failed to load hooks: %w", err)
	}
	return manager, nil
}
