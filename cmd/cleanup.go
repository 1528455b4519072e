package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cleanupEmergency bool
	cleanupForce     bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Reclaim storage space",
	Long: `Run the eviction passes: sessions older than the configured max age are
deleted, then the least-recently-used sessions go until usage is back under
the size target.

Cleanup is time-gated to once per day; --force ignores the gate.
--emergency runs the crisis path instead: it works from the raw keys alone,
deletes the oldest half of all sessions, and resets the ledger. Use it after
a write was rejected by a full substrate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		if cleanupEmergency {
			store.EmergencyCleanup()
			fmt.Println("Emergency cleanup completed")
			return nil
		}

		if cleanupForce {
			store.ForceCleanup()
		} else {
			store.Cleanup()
		}
		fmt.Println("Cleanup completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().BoolVar(&cleanupEmergency, "emergency", false, "Run the emergency cleanup path")
	cleanupCmd.Flags().BoolVar(&cleanupForce, "force", false, "Ignore the once-per-day gate")
}
