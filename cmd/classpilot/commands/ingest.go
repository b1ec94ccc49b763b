// ABOUTME: CLI command to index course transcripts
// ABOUTME: Accepts a single file or a folder of .txt transcripts
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <path>",
		Short: "Index course transcripts",
		Long: `Index course transcripts into the retrieval store.

Given a folder, every .txt transcript in it is parsed, chunked, and
embedded. Courses that are already indexed are skipped, so re-running
over the same folder is safe. Given a single file, it is indexed
unconditionally.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
		Example: `  classpilot ingest ./docs
  classpilot ingest ./docs/mcp_course.txt`,
	}

	cmd.Flags().BoolVar(&ingestSingleFile, "file", false, "Treat the path as a single transcript file")

	return cmd
}

var ingestSingleFile bool

func runIngest(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	ctx := cmd.Context()
	sys, err := buildSystem(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = sys.Close() }()

	if ingestSingleFile {
		course, chunks, err := sys.AddCourseDocument(ctx, args[0])
		if err != nil {
			return fmt.Errorf("indexing %s: %w", args[0], err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %q (%d chunks)\n", course.Title, chunks)
		}
		return nil
	}

	courses, chunks, err := sys.AddCourseFolder(ctx, args[0])
	if err != nil {
		return fmt.Errorf("indexing folder %s: %w", args[0], err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d course(s), %d chunk(s)\n", courses, chunks)
	}
	return nil
}
