package cmd

import (
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search sessions by title and preview",
	Long: `Search stored sessions with a case-insensitive substring match against
index titles and previews. An empty query lists everything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		displaySessions(store.SearchSessions(query))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
