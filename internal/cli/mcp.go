package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	distillermcp "github.com/akshayb7/notion-knowledge-distiller-mcp/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the distiller MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the distiller MCP server on stdio",
	Long: `Start the distiller MCP server on stdio transport.

The server exposes the distiller workflow as MCP tools that AI assistants
can call: ping, classify_conversation, create_notion_notes, search_notes,
read_note. Tool availability follows the configured Notion credentials.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := distillermcp.NewServer(Cfg, Persister, PersistErr, Library, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
