package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump raw storage state",
	Long: `Dump the raw substrate state as JSON: every key, the session-entry
count, whether an index exists, and the current ledger. For troubleshooting
drift between the raw entries and the index/ledger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		state := store.Debug()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("failed to encode state: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
