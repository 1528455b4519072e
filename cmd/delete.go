package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a stored session",
	Long: `Delete one session: its raw messages, its ledger accounting, and its
index entry. Deleting a session that does not exist succeeds silently.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		store.DeleteSession(args[0])
		fmt.Printf("Deleted session %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
