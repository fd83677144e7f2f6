package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/pipget/pkg/errors"
)

// HookFileExtensions lists the supported hook file extensions
var HookFileExtensions = map[string]bool{
	".tengo": true,
}

// LoadHooksFromDir loads hook scripts from a directory. Scripts are named
// after their hook type, e.g. <dir>/pre-download.tengo. Files with other
// extensions or unknown hook types are skipped.
func LoadHooksFromDir(manager HookManager, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(errors.ErrHookLoad, "%s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if _, ok := HookFileExtensions[ext]; !ok {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), ext))
		switch hookType {
		case PreDownload, PostDownload:
		default:
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("error reading hook file %s: %w", entry.Name(), err)
		}

		if err := manager.AddHook(Hook{
			Type:    hookType,
			Content: string(content),
		}); err != nil {
			return fmt.Errorf("error adding hook %s: %w", hookType, err)
		}
	}

	return nil
}

// HookTemplate generates a template for a hook script
func HookTemplate(hookType HookType) string {
	switch hookType {
	case PreDownload:
		return `// Pre-download hook
// This script runs before each artifact download
// Available variables:
// - packageName: string - name of the package being fetched
// - artifactName: string - file name of the artifact
// - artifactVersion: string - version extracted from the file name
// - artifactURL: string - source URL of the artifact
// - destPath: string - path the artifact will be saved to

// Example: Refuse to download from an unexpected mirror
/*
if !text.has_prefix(artifactURL, "https://files.pythonhosted.org/") {
    err := "unexpected artifact host"
}
*/`

	case PostDownload:
		return `// Post-download hook
// This script runs after each artifact download
// Available variables: same as pre-download hook

// Example: Log the downloaded file
/*
fmt := import("fmt")
fmt.println("saved " + destPath)
*/`

	default:
		return "// Unknown hook type: " + string(hookType)
	}
}
