package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// CreateKVFixture creates a SQLite kv database fixture pre-seeded with one
// chat session entry under the default chatvault prefix
func CreateKVFixture(t *testing.T, dbPath string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	messages := []map[string]interface{}{
		{
			"id":        "msg-1",
			"role":      "user",
			"content":   "Hello world",
			"timestamp": time.Now().Format(time.RFC3339),
		},
		{
			"id":        "msg-2",
			"role":      "assistant",
			"content":   "Hi there",
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	InsertKV(t, db, "chatvault_messages_chat1", string(JSONMarshal(t, messages)))
}

// InsertKV inserts a key/value pair into a kv database
func InsertKV(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("Failed to insert kv pair: %v", err)
	}
}

// CreateExportFixture writes an export payload file mapping session ids to
// message lists, as produced by the export command
func CreateExportFixture(t *testing.T, path string, sessions map[string][]map[string]interface{}) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, JSONMarshal(t, sessions), 0644); err != nil {
		t.Fatalf("Failed to write export fixture: %v", err)
	}
}
