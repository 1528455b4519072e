package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import sessions from an export payload",
	Long: `Import sessions from a JSON payload produced by 'chatvault export'.

Each session is saved through the normal save path, so the index and ledger
are rebuilt incrementally and existing sessions with the same id are
replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		imported, err := store.Import(string(data))
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d session(s)\n", imported)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
