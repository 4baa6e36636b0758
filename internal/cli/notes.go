package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchType  string
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search saved notes by keyword",
	Long: `Search the notes database by keyword. The keyword is matched
case-insensitively against note titles and topics. Use --type to restrict
results to one conversation type.

The keyword filter applies to the most recent notes returned by the database
query, so older matches beyond that page are not found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Library == nil {
			return fmt.Errorf("library not initialized")
		}

		results, err := Library.Search(cmd.Context(), args[0], searchType, searchLimit)
		if err != nil {
			return fmt.Errorf("searching notes: %w", err)
		}

		if len(results) == 0 {
			fmt.Printf("No notes found matching %q.\n", args[0])
			return nil
		}

		fmt.Printf("Found %d note(s):\n\n", len(results))
		fmt.Printf("  %-3s %-40s %-24s %-12s %s\n", "#", "TITLE", "TYPE", "STATUS", "DATE")
		fmt.Printf("  %-3s %-40s %-24s %-12s %s\n", "---", "-----", "----", "------", "----")
		for i, r := range results {
			fmt.Printf("  %-3d %-40s %-24s %-12s %s\n", i+1, truncate(r.Title, 40), r.Type, r.Status, r.Date)
			fmt.Printf("      topics: %s\n      id: %s\n", r.Topics, r.ID)
		}

		return nil
	},
}

var readCmd = &cobra.Command{
	Use:   "read <note-id>",
	Short: "Print the full content of a saved note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Library == nil {
			return fmt.Errorf("library not initialized")
		}

		content, err := Library.Read(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("reading note: %w", err)
		}

		fmt.Println(content)
		return nil
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	searchCmd.Flags().StringVar(&searchType, "type", "", "restrict to one conversation type")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum results (default 10, max 20)")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(readCmd)
}
