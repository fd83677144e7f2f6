package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/glorpus-work/pipget/pkg/archive"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	var (
		extract bool
		member  string
		destDir string
	)

	cmd := &cobra.Command{
		Use:   "inspect ARCHIVE",
		Short: "List or extract a downloaded artifact",
		Long: `List the contents of a downloaded artifact archive (wheel, zip or tar
sdist), or extract it with --extract.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], extract, member, destDir)
		},
	}

	cmd.Flags().BoolVar(&extract, "extract", false, "Extract the whole archive instead of listing it")
	cmd.Flags().StringVar(&member, "file", "", "Extract a single member from the archive")
	cmd.Flags().StringVar(&destDir, "dest", "", "Extraction directory (defaults to the archive name)")

	return cmd
}

func runInspect(cmd *cobra.Command, archivePath string, extract bool, member, destDir string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	manager := archive.NewManager()
	ctx := cmd.Context()

	switch {
	case member != "":
		if destDir == "" {
			destDir = "."
		}
		target := filepath.Join(destDir, filepath.Base(member))
		if err := manager.ExtractFile(ctx, archivePath, member, target); err != nil {
			return fmt.Errorf("failed to extract %s from %s: %w", member, archivePath, err)
		}
		fmt.Printf("Extracted %s to %s\n", member, target)
		return nil

	case extract:
		if destDir == "" {
			destDir = extractionDir(archivePath)
		}
		if err := manager.ExtractAll(ctx, archivePath, destDir); err != nil {
			return fmt.Errorf("failed to extract %s: %w", archivePath, err)
		}
		fmt.Printf("Extracted %s to %s\n", archivePath, destDir)
		return nil

	default:
		entries, err := manager.List(ctx, archivePath)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", archivePath, err)
		}

		tabWriter := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
		_, _ = fmt.Fprintln(tabWriter, "SIZE\tPATH")
		for _, entry := range entries {
			if entry.Dir {
				_, _ = fmt.Fprintf(tabWriter, "-\t%s/\n", entry.Path)
				continue
			}
			_, _ = fmt.Fprintf(tabWriter, "%d\t%s\n", entry.Size, entry.Path)
		}
		_ = tabWriter.Flush()
		return nil
	}
}

// extractionDir derives a directory name from the archive file name, e.g.
// "flask-2.0.1.tar.gz" becomes "flask-2.0.1".
func extractionDir(archivePath string) string {
	base := filepath.Base(archivePath)
	for _, suffix := range []string{".tar.gz", ".tgz", ".whl", ".zip", ".gz"} {
		if strings.HasSuffix(base, suffix) {
			return strings.TrimSuffix(base, suffix)
		}
	}
	return base + ".extracted"
}
