package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/chatvault/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	storagePath string
	configPath  string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatvault",
	Short: "Bounded chat-history storage engine",
	Long: `chatvault stores chat sessions in a size-constrained key/value store
with a searchable index, hard size/age limits, and defined recovery behavior.

Sessions live as raw message lists; a lightweight index serves listing and
search without loading message bodies, and a bookkeeping ledger drives
age- and size-based eviction. The raw entries are always authoritative:
the index and ledger can be rebuilt from them at any time.

Quick Start:
  chatvault list                    # List all sessions
  chatvault show <session-id>       # View a specific session
  chatvault stats                   # Storage usage
  chatvault export > backup.json    # Back up every session

For detailed usage, see: https://github.com/iksnae/chatvault`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Custom storage location (path to the database file)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// defaultStoragePath returns the database location used when --storage is unset
func defaultStoragePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".chatvault", "chatvault.db"), nil
}

// openStore opens the configured substrate and initializes the engine.
// The returned cleanup closes the database.
func openStore() (*internal.Store, func(), error) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	path := storagePath
	if path == "" {
		path, err = defaultStoragePath()
		if err != nil {
			return nil, nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	provider, err := internal.OpenSQLiteProvider(path, cfg.SubstrateQuotaBytes())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	store := internal.NewStore(provider, cfg)
	store.Init()

	cleanup := func() {
		if err := provider.Close(); err != nil {
			internal.LogWarn("Failed to close storage: %v", err)
		}
	}
	return store, cleanup, nil
}
