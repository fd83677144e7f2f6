package index

import (
	"strings"

	"github.com/glorpus-work/pipget/internal/logger"
	"github.com/glorpus-work/pipget/pkg/model"
	"github.com/glorpus-work/pipget/pkg/pyver"
	"github.com/hashicorp/go-version"
)

// archiveExtensions are the file name endings whose version text is
// comparable. A version condition silently drops everything else.
var archiveExtensions = []string{".tar.gz", ".tgz", ".whl", ".zip"}

// FilterOptions controls which artifacts survive Filter.
type FilterOptions struct {
	// Constraint keeps only artifacts whose file name carries a version
	// satisfying it. Nil applies no version condition.
	Constraint *pyver.Constraint
	// NameFilters keeps artifacts whose file name contains at least one of
	// the given substrings. Matching is case sensitive.
	NameFilters []string
	// Latest reduces the result to the single highest-versioned artifact.
	Latest bool
}

// Filter applies the version condition, the name filters and the latest
// reduction, in that order. Page order is preserved.
func Filter(artifacts []model.Artifact, opts FilterOptions) []model.Artifact {
	result := artifacts
	if opts.Constraint != nil {
		result = filterConstraint(result, opts.Constraint)
	}
	if len(opts.NameFilters) > 0 {
		result = filterNames(result, opts.NameFilters)
	}
	if opts.Latest {
		result = filterLatest(result)
	}
	return result
}

// FilterExtensions keeps artifacts whose URL ends with one of the given
// suffix tokens. The URL is lowercased before comparison and the tokens are
// matched verbatim, so "gz" also admits ".tar.gz". An empty token list keeps
// everything.
func FilterExtensions(artifacts []model.Artifact, exts []string) []model.Artifact {
	if len(exts) == 0 {
		return artifacts
	}
	result := make([]model.Artifact, 0, len(artifacts))
	for _, artifact := range artifacts {
		lowered := strings.ToLower(artifact.URL)
		for _, ext := range exts {
			if strings.HasSuffix(lowered, ext) {
				result = append(result, artifact)
				break
			}
		}
	}
	return result
}

func filterConstraint(artifacts []model.Artifact, c *pyver.Constraint) []model.Artifact {
	result := make([]model.Artifact, 0, len(artifacts))
	for _, artifact := range artifacts {
		name := artifact.FileName()
		if !hasArchiveExtension(name) {
			continue
		}
		raw, ok := artifact.Version()
		if !ok {
			continue
		}
		v, err := pyver.Parse(raw)
		if err != nil {
			logger.Warn("Skipping artifact with unparseable version", logger.Fields{
				"file":    name,
				"version": raw,
			})
			continue
		}
		if c.Check(v) {
			result = append(result, artifact)
		}
	}
	return result
}

func filterNames(artifacts []model.Artifact, needles []string) []model.Artifact {
	result := make([]model.Artifact, 0, len(artifacts))
	for _, artifact := range artifacts {
		name := artifact.FileName()
		for _, needle := range needles {
			if strings.Contains(name, needle) {
				result = append(result, artifact)
				break
			}
		}
	}
	return result
}

// filterLatest scans for the highest parseable version. Only a strictly
// greater version displaces the champion, so among equal versions the first
// one on the page wins. Artifacts without a parseable version never win.
func filterLatest(artifacts []model.Artifact) []model.Artifact {
	bestIdx := -1
	var best *version.Version
	for i, artifact := range artifacts {
		raw, ok := artifact.Version()
		if !ok {
			continue
		}
		v, err := pyver.Parse(raw)
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			bestIdx = i
			best = v
		}
	}
	if bestIdx < 0 {
		return []model.Artifact{}
	}
	return []model.Artifact{artifacts[bestIdx]}
}

func hasArchiveExtension(name string) bool {
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
