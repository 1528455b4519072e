package internal

import (
	"testing"
)

func TestMemoryProvider_SetGetRemove(t *testing.T) {
	p := NewMemoryProvider()

	if _, ok := p.Get("missing"); ok {
		t.Error("Get() reported a missing key as present")
	}

	if err := p.Set("a", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, ok := p.Get("a"); !ok || v != "1" {
		t.Errorf("Get() = (%q, %v), want (\"1\", true)", v, ok)
	}

	// Overwrite keeps a single entry
	if err := p.Set("a", "2"); err != nil {
		t.Fatalf("Set() error = %v", err)
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

	// Removing an absent key is a no-op
	p.Remove("a")
}

func TestMemoryProvider_KeyEnumeration(t *testing.T) {
	p := NewMemoryProvider()
	p.Set("first", "1")
	p.Set("second", "2")
	p.Set("third", "3")
	p.Remove("second")

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}

	got := Keys(p)
	want := []string{"first", "third"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, ok := p.Key(5); ok {
		t.Error("Key() out of range reported present")
	}
}

func TestMemoryProvider_Clear(t *testing.T) {
	p := NewMemoryProvider()
	p.Set("a", "1")
	p.Set("b", "2")

	p.Clear()
	if p.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", p.Len())
	}
	if _, ok := p.Get("a"); ok {
		t.Error("Get() found a key after Clear()")
	}
}
