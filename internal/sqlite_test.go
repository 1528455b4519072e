package internal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iksnae/chatvault/testutil"
)

func openTestSQLite(t *testing.T, quota int64) *SQLiteProvider {
	t.Helper()
	dir := testutil.CreateTempDir(t)
	p, err := OpenSQLiteProvider(filepath.Join(dir, "test.db"), quota)
	if err != nil {
		t.Fatalf("OpenSQLiteProvider() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestSQLiteProvider_RoundTrip(t *testing.T) {
	p := openTestSQLite(t, 0)

	if err := p.Set("a", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, ok := p.Get("a"); !ok || v != "1" {
		t.Errorf("Get() = (%q, %v), want (\"1\", true)", v, ok)
	}

	if err := p.Set("a", "2"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	if v, _ := p.Get("a"); v != "2" {
		t.Errorf("Get() after overwrite = %q, want \"2\"", v)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}

	p.Remove("a")
	if _, ok := p.Get("a"); ok {
		t.Error("Get() found a removed key")
	}
}

func TestSQLiteProvider_KeyEnumerationSorted(t *testing.T) {
	p := openTestSQLite(t, 0)
	p.Set("b", "2")
	p.Set("a", "1")
	p.Set("c", "3")

	want := []string{"a", "b", "c"}
	got := Keys(p)
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSQLiteProvider_Quota(t *testing.T) {
	// Quota of 100 bytes: each stored char counts double
	p := openTestSQLite(t, 100)

	if err := p.Set("k1", "0123456789"); err != nil {
		t.Fatalf("Set() under quota error = %v", err)
	}

	// 40 more chars would put usage at (2+10+2+40)*2 = 108 > 100
	big := make([]byte, 40)
	for i := range big {
		big[i] = 'x'
	}
	err := p.Set("k2", string(big))
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Set() over quota error = %v, want ErrQuotaExceeded", err)
	}

	// Freeing space makes the write possible again
	p.Remove("k1")
	if err := p.Set("k2", string(big)); err != nil {
		t.Errorf("Set() after Remove error = %v", err)
	}
}

func TestSQLiteProvider_QuotaAllowsOverwrite(t *testing.T) {
	p := openTestSQLite(t, 100)

	if err := p.Set("k", "0123456789"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// Overwriting the same key replaces its old size instead of stacking
	if err := p.Set("k", "0123456789012345678901234567890123456789"); err != nil {
		t.Errorf("Set() overwrite within quota error = %v", err)
	}
}

func TestSQLiteProvider_Clear(t *testing.T) {
	p := openTestSQLite(t, 0)
	p.Set("a", "1")
	p.Set("b", "2")

	p.Clear()
	if p.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", p.Len())
	}
}

func TestOpenSQLiteProvider_ExistingFixture(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	dbPath := filepath.Join(dir, "seeded.db")
	testutil.CreateKVFixture(t, dbPath)

	p, err := OpenSQLiteProvider(dbPath, 0)
	if err != nil {
		t.Fatalf("OpenSQLiteProvider() error = %v", err)
	}
	defer p.Close()

	if _, ok := p.Get("chatvault_messages_chat1"); !ok {
		t.Error("Get() did not find the seeded session entry")
	}
}
