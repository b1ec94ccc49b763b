// ABOUTME: Root CLI command with global flags and subcommand wiring
// ABOUTME: Defines verbose/quiet/format flags shared by all commands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
 ██████╗██╗      █████╗ ███████╗███████╗██████╗ ██╗██╗      ██████╗ ████████╗
██╔════╝██║     ██╔══██╗██╔════╝██╔════╝██╔══██╗██║██║     ██╔═══██╗╚══██╔══╝
██║     ██║     ███████║███████╗███████╗██████╔╝██║██║     ██║   ██║   ██║
██║     ██║     ██╔══██║╚════██║╚════██║██╔═══╝ ██║██║     ██║   ██║   ██║
╚██████╗███████╗██║  ██║███████║███████║██║     ██║███████╗╚██████╔╝   ██║
 ╚═════╝╚══════╝╚═╝  ╚═╝╚══════╝╚══════╝╚═╝     ╚═╝╚══════╝ ╚═════╝    ╚═╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classpilot",
		Short: "Ask questions about your course materials",
		Long: banner + `
ClassPilot indexes course transcripts and answers questions about them
using semantic search and tool-assisted generation.

Point it at a folder of transcripts, then ask away:

  classpilot ingest ./docs
  classpilot ask "What does lesson 2 of the MCP course cover?"`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")

	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewOutlineCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}
