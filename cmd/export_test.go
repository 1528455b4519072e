package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iksnae/chatvault/testutil"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	return rootCmd.Execute()
}

func TestImportExportRoundTrip(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	dbPath := filepath.Join(dir, "chatvault.db")
	payloadPath := filepath.Join(dir, "payload.json")
	outPath := filepath.Join(dir, "backup.json")
	t.Cleanup(func() {
		storagePath = ""
		exportOutput = ""
	})

	now := time.Now().UTC().Format(time.RFC3339)
	testutil.CreateExportFixture(t, payloadPath, map[string][]map[string]interface{}{
		"chat1": {
			{"id": "m1", "role": "user", "content": "Hello", "timestamp": now},
			{"id": "m2", "role": "assistant", "content": "Hi", "timestamp": now},
		},
		"chat2": {
			{"id": "m1", "role": "user", "content": "Second session", "timestamp": now},
		},
	})

	if err := runCommand(t, "--storage", dbPath, "import", payloadPath); err != nil {
		t.Fatalf("import returned error = %v", err)
	}

	if err := runCommand(t, "--storage", dbPath, "export", "-o", outPath); err != nil {
		t.Fatalf("export returned error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read exported payload: %v", err)
	}
	var exported map[string][]map[string]interface{}
	testutil.JSONUnmarshal(t, data, &exported)
	if len(exported) != 2 {
		t.Errorf("exported %d sessions, want 2", len(exported))
	}
	if got := len(exported["chat1"]); got != 2 {
		t.Errorf("chat1 has %d messages after round trip, want 2", got)
	}
}

func TestExportPerSessionFiles(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	dbPath := filepath.Join(dir, "chatvault.db")
	testutil.CreateKVFixture(t, dbPath)
	outDir := filepath.Join(dir, "out")
	t.Cleanup(func() {
		storagePath = ""
		exportFormat = ""
		exportDir = ""
	})

	if err := runCommand(t, "--storage", dbPath, "export", "--format", "md", "--dir", outDir); err != nil {
		t.Fatalf("export --dir returned error = %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("failed to read output directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("export wrote %d files, want 1", len(entries))
	}
	if got := entries[0].Name(); got != "session_chat1.md" {
		t.Errorf("exported file = %q, want session_chat1.md", got)
	}
}
