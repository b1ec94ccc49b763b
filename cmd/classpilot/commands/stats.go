// ABOUTME: CLI command showing what the index holds
// ABOUTME: Prints course count and titles, optionally as JSON
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"

	"github.com/classpilot/classpilot/internal/rag"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Long:  `Show the number of indexed courses and their titles.`,
		RunE:  runStats,
		Example: `  classpilot stats
  classpilot stats --format json`,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	titles, err := store.CourseTitles(ctx)
	if err != nil {
		return fmt.Errorf("listing courses: %w", err)
	}
	analytics := rag.Analytics{TotalCourses: len(titles), CourseTitles: titles}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(analytics, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Courses: %d\n", analytics.TotalCourses)
	for _, title := range analytics.CourseTitles {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", title)
	}
	return nil
}
