package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "distiller",
	Short: "Notion Knowledge Distiller - turn conversations into structured Notion notes",
	Long: `Notion Knowledge Distiller converts analyzed chat conversations into
structured, searchable Notion pages with adaptive formatting based on the
conversation type.

It runs primarily as an MCP server ('distiller mcp serve') for AI assistants,
and also offers direct commands for searching and reading saved notes.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("distiller %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
