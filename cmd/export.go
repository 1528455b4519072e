package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/chatvault/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportDir    string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions",
	Long: `Export stored sessions.

Without flags, every session is serialized into one JSON payload on stdout
(the interchange format accepted by 'chatvault import'). With --format and
--dir, each session is instead written to its own file in the chosen format
(jsonl, md, yaml, json).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		// Per-session export
		if exportDir != "" {
			format := exportFormat
			if format == "" {
				format = "json"
			}
			exporter, err := export.NewExporter(format)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(exportDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			sessions := store.ListSessions()
			exported := 0
			for _, session := range sessions {
				dump := store.DumpSession(session.ID)
				if dump == nil {
					continue
				}

				path := filepath.Join(exportDir, fmt.Sprintf("session_%s.%s", session.ID, exporter.Extension()))
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", path, err)
				}
				if err := exporter.Export(dump, f); err != nil {
					f.Close()
					return fmt.Errorf("failed to export session %s: %w", session.ID, err)
				}
				if err := f.Close(); err != nil {
					return err
				}
				exported++
			}
			fmt.Printf("Exported %d session(s) to %s\n", exported, exportDir)
			return nil
		}

		// Whole-store payload
		payload, err := store.ExportAll()
		if err != nil {
			return err
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, []byte(payload), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", exportOutput, err)
			}
			fmt.Printf("Exported to %s\n", exportOutput)
			return nil
		}

		fmt.Println(payload)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Per-session format: jsonl, md, yaml, json (requires --dir)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Write one file per session into this directory")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write the JSON payload to a file instead of stdout")
}
