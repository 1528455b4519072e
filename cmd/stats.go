package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show storage usage",
	Long:  `Show total storage usage, the configured limit, and the session count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		stats := store.Stats()

		fmt.Println(headerStyle.Render("Storage usage"))
		fmt.Println()

		w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintf(w, "Used\t%s\n", countStyle.Render(fmt.Sprintf("%.2f MB", stats.TotalSizeMB)))
		_, _ = fmt.Fprintf(w, "Limit\t%.0f MB\n", stats.MaxSizeMB)
		_, _ = fmt.Fprintf(w, "Usage\t%.1f%%\n", stats.UsagePercent)
		_, _ = fmt.Fprintf(w, "Sessions\t%d\n", stats.ChatCount)
		_ = w.Flush()

		if store.NearLimit() {
			fmt.Println()
			fmt.Println(titleStyle.Render("Warning: storage is near its limit; cleanup will evict old sessions"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
