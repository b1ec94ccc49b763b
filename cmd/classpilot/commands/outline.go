// ABOUTME: CLI command to print a course outline
// ABOUTME: Resolves partial course names against the catalog
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

// NewOutlineCmd creates the outline command
func NewOutlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outline <course>",
		Short: "Show a course outline",
		Long: `Show a course's title, link, and lesson list.

Partial course names work, e.g. "MCP" finds "Introduction to MCP".`,
		Args: cobra.ExactArgs(1),
		RunE: runOutline,
		Example: `  classpilot outline MCP
  classpilot outline "Python Testing"`,
	}
}

func runOutline(cmd *cobra.Command, args []string) error {
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

	outline, err := sys.Index().CourseOutline(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), outline)
	return nil
}
