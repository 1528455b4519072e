package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored session",
	Long: `Delete every session, the index, and reset the ledger. This cannot be
undone; consider 'chatvault export' first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			fmt.Print("Delete all sessions? This cannot be undone. [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted")
				return nil
			}
		}

		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		store.ClearAll()
		fmt.Println("All sessions cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")
}
