// ABOUTME: CLI command for direct semantic search over indexed content
// ABOUTME: Bypasses generation and prints raw matches
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

var (
	searchCourse string
	searchLesson int
	searchLimit  int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed course content",
		Long: `Search indexed course content directly, without generation.

Course names fuzzy-match against the catalog, so partial names work.

Examples:
  classpilot search "tool registration"
  classpilot search --course MCP --lesson 2 "protocol messages"
  classpilot search --format json "chunking"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&searchCourse, "course", "", "Restrict to a course (partial names work)")
	cmd.Flags().IntVar(&searchLesson, "lesson", 0, "Restrict to a lesson number")
	cmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	var lesson *int
	if searchLesson > 0 {
		lesson = &searchLesson
	}

	results := sys.Index().Search(ctx, args[0], searchCourse, lesson, searchLimit)
	if results.Err != "" {
		return fmt.Errorf("%s", results.Err)
	}
	if results.IsEmpty() {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DISTANCE\tCOURSE\tLESSON\tCONTENT\n")
	fmt.Fprintf(w, "--------\t------\t------\t-------\n")
	for i, doc := range results.Documents {
		meta := results.Metadata[i]
		lessonCol := "-"
		if meta.LessonNumber != nil {
			lessonCol = fmt.Sprintf("%d", *meta.LessonNumber)
		}
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			results.Distances[i],
			truncate(meta.CourseTitle, 30),
			lessonCol,
			truncate(doc, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results.Documents))
	}
	return nil
}
