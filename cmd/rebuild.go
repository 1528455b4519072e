package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the session index",
	Long: `Rebuild the session index from the raw session entries, replacing any
existing index wholesale. The raw entries are the source of truth; run this
when listing looks inconsistent with what is actually stored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		store.RebuildIndex()
		fmt.Printf("Index rebuilt: %d session(s)\n", len(store.ListSessions()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
