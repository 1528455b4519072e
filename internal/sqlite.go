package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider is a durable Provider backed by a single-table SQLite
// key/value store. A non-zero quota makes Set fail with ErrQuotaExceeded
// once the estimated stored size would pass it, mirroring the hard quota of
// browser storage.
type SQLiteProvider struct {
	db    *sql.DB
	quota int64 // bytes; 0 disables the quota
}

// OpenSQLiteProvider opens (creating if needed) a SQLite-backed provider at
// the given path. Use ":memory:" for an ephemeral store.
func OpenSQLiteProvider(path string, quotaBytes int64) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &SQLiteProvider{db: db, quota: quotaBytes}, nil
}

// Close closes the underlying database
func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}

// Get returns the value for key. Read errors are logged and reported as
// absence; a corrupt or unreadable entry must never crash a caller.
func (p *SQLiteProvider) Get(key string) (string, bool) {
	var value string
	err := p.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		LogError("Failed to read key %s: %v", key, err)
		return "", false
	}
	return value, true
}

// Set stores a value under key, enforcing the quota when one is configured
func (p *SQLiteProvider) Set(key, value string) error {
	if p.quota > 0 {
		usage, err := p.usageExcluding(key)
		if err != nil {
			return &StorageError{Key: key, Op: "set", Err: err}
		}
		if usage+EstimateSize(key)+EstimateSize(value) > p.quota {
			return ErrQuotaExceeded
		}
	}

	_, err := p.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &StorageError{Key: key, Op: "set", Err: err}
	}
	return nil
}

// Remove deletes a key. Removing an absent key is a no-op.
func (p *SQLiteProvider) Remove(key string) {
	if _, err := p.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		LogError("Failed to remove key %s: %v", key, err)
	}
}

// Clear deletes every key
func (p *SQLiteProvider) Clear() {
	if _, err := p.db.Exec("DELETE FROM kv"); err != nil {
		LogError("Failed to clear store: %v", err)
	}
}

// Key returns the i-th key in sorted order
func (p *SQLiteProvider) Key(i int) (string, bool) {
	var key string
	err := p.db.QueryRow("SELECT key FROM kv ORDER BY key LIMIT 1 OFFSET ?", i).Scan(&key)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		LogError("Failed to enumerate key %d: %v", i, err)
		return "", false
	}
	return key, true
}

// Len returns the number of stored keys
func (p *SQLiteProvider) Len() int {
	var count int
	if err := p.db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&count); err != nil {
		LogError("Failed to count keys: %v", err)
		return 0
	}
	return count
}

// usageExcluding estimates the stored bytes of every entry except key,
// using the same two-bytes-per-character estimate as the engine accounting
func (p *SQLiteProvider) usageExcluding(key string) (int64, error) {
	var usage sql.NullInt64
	err := p.db.QueryRow(
		"SELECT SUM(2 * (LENGTH(key) + LENGTH(value))) FROM kv WHERE key != ?", key,
	).Scan(&usage)
	if err != nil {
		return 0, err
	}
	return usage.Int64, nil
}
