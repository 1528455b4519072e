package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/chatvault/testutil"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantErr: false,
		},
		{
			name:    "help flag",
			args:    []string{"--help"},
			wantErr: false,
		},
		{
			name:    "unknown command",
			args:    []string{"nonexistent-command"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			var stdout, stderr bytes.Buffer
			rootCmd.SetOut(&stdout)
			rootCmd.SetErr(&stderr)

			err := rootCmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRootCommand_ListAgainstTempStorage(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	dbPath := filepath.Join(dir, "chatvault.db")

	rootCmd.SetArgs([]string{"--storage", dbPath, "list"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() { storagePath = "" })

	if err := rootCmd.Execute(); err != nil {
		t.Errorf("list against a fresh database returned error = %v", err)
	}
}

func TestDefaultStoragePath(t *testing.T) {
	path, err := defaultStoragePath()
	if err != nil {
		t.Fatalf("defaultStoragePath() error = %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(".chatvault", "chatvault.db")) {
		t.Errorf("defaultStoragePath() = %q, want a .chatvault/chatvault.db suffix", path)
	}
}
