package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display configuration and tool availability",
	Long: `Display the resolved Notion configuration and which distiller tools
are available with it. Secrets are reported as set/missing, never printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("== Configuration ==")
		fmt.Printf("  %-16s %s\n", "API key", setMark(Cfg.HasCredential()))
		fmt.Printf("  %-16s %s\n", "Parent page ID", setMark(Cfg.ParentPageID != ""))
		fmt.Printf("  %-16s %s\n", "Database ID", setMark(Cfg.DatabaseID != ""))
		fmt.Printf("  %-16s %s\n", "API endpoint", Cfg.BaseURL)
		fmt.Println()

		fmt.Println("== Tools ==")
		fmt.Printf("  %-22s %s\n", "ping", availableMark(true))
		fmt.Printf("  %-22s %s\n", "classify_conversation", availableMark(Cfg.HasCredential()))
		fmt.Printf("  %-22s %s\n", "create_notion_notes", availableMark(Cfg.HasCredential() && Cfg.HasDestination()))
		fmt.Printf("  %-22s %s\n", "search_notes", availableMark(Cfg.CanSearch()))
		fmt.Printf("  %-22s %s\n", "read_note", availableMark(Cfg.CanSearch()))

		if Persister != nil {
			fmt.Printf("\nNotes are persisted to the %s destination.\n", Persister.Destination())
		} else if PersistErr != nil {
			fmt.Printf("\nNote creation disabled: %v\n", PersistErr)
		}

		return nil
	},
}

func setMark(ok bool) string {
	if ok {
		return "set"
	}
	return "missing"
}

func availableMark(ok bool) string {
	if ok {
		return "available"
	}
	return "disabled"
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
