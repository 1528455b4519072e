package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/chatvault/internal"
	"github.com/iksnae/chatvault/internal/export"
	"github.com/spf13/cobra"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a stored session",
	Long: `Show the full message list of one session.

By default messages are rendered for the terminal; use --format to emit the
session as json, jsonl, md, or yaml instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		dump := store.DumpSession(args[0])
		if dump == nil {
			return fmt.Errorf("session not found: %s", args[0])
		}

		if showFormat != "" {
			exporter, err := export.NewExporter(showFormat)
			if err != nil {
				return err
			}
			return exporter.Export(dump, os.Stdout)
		}

		displaySession(dump)
		return nil
	},
}

func displaySession(dump *internal.SessionDump) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%s — %d message(s)", dump.Title, len(dump.Messages))))
	fmt.Println()

	for _, msg := range dump.Messages {
		role := titleStyle.Render(msg.Role)
		when := ""
		if !msg.Timestamp.IsZero() {
			when = dateStyle.Render("  " + formatTimestamp(msg.Timestamp.UnixMilli()))
		}
		fmt.Printf("%s%s\n%s\n\n", role, when, msg.Content)
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showFormat, "format", "", "Output format: json, jsonl, md, yaml")
}
