// ABOUTME: CLI command to ask a question about indexed course materials
// ABOUTME: Prints the generated answer with its citations
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

var askSessionID string

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about course materials",
		Long: `Ask a question about indexed course materials.

The model decides whether to search the index or answer directly.
Pass --session to continue a previous conversation; the session id is
printed with every answer.`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
		Example: `  classpilot ask "What does lesson 2 of the MCP course cover?"
  classpilot ask --session 4f9d... "And lesson 3?"
  classpilot ask --format json "Summarize the testing course"`,
	}

	cmd.Flags().StringVar(&askSessionID, "session", "", "Session id to continue a conversation")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	answer, err := sys.Answer(ctx, args[0], askSessionID)
	if err != nil {
		return fmt.Errorf("answering: %w", err)
	}

	if outputFormat == "json" {
		payload := map[string]any{
			"answer":     answer.Text,
			"sources":    answer.Citations,
			"session_id": answer.SessionID,
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer.Text)
	if len(answer.Citations) > 0 && !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "\nSources:")
		for _, c := range answer.Citations {
			if c.URL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s (%s)\n", c.Label, c.URL)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", c.Label)
			}
		}
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSession: %s\n", answer.SessionID)
	}
	return nil
}
